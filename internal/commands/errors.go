package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/latoulicious/tyria/pkg/gw2"
)

// NotFoundMessage answers a character name the caller does not own
const NotFoundMessage = "Invalid character name"

// errorMessage turns an API failure into the text shown to the user
func (c *Commands) errorMessage(err error) string {
	var missing *gw2.MissingScopesError
	switch {
	case errors.Is(err, gw2.ErrNoKey):
		return "You need to add an API key first. Use `" + c.prefix + "key add <key>`."
	case errors.As(err, &missing):
		return "Your API key is missing the following permissions: " + strings.Join(missing.Missing, ", ") +
			". Please add a key that grants them."
	case errors.Is(err, gw2.ErrInvalidKey):
		return "Your API key is invalid. Please add a new one."
	case errors.Is(err, gw2.ErrForbidden):
		return "Your API key does not have access to that."
	case errors.Is(err, gw2.ErrInactive):
		return "The Guild Wars 2 API is currently unavailable. Please try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return "The Guild Wars 2 API took too long to respond."
	default:
		return "Something went wrong while talking to the Guild Wars 2 API."
	}
}

// isUserError reports failures caused by the caller's key rather than by the bot or the API
func isUserError(err error) bool {
	var missing *gw2.MissingScopesError
	return errors.Is(err, gw2.ErrNoKey) ||
		errors.As(err, &missing) ||
		errors.Is(err, gw2.ErrInvalidKey) ||
		errors.Is(err, gw2.ErrForbidden)
}
