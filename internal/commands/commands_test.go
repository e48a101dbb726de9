package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/tyria/internal/characters"
	charactersmocks "github.com/latoulicious/tyria/internal/characters/mocks"
	"github.com/latoulicious/tyria/pkg/database"
	"github.com/latoulicious/tyria/pkg/gamedata"
	"github.com/latoulicious/tyria/pkg/gw2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeCharacters struct {
	info      *characters.InfoSummary
	list      []gw2.Character
	gear      *characters.GearSummary
	birthdays []characters.BirthdayEntry
	err       error
}

func (f *fakeCharacters) Info(context.Context, string, string) (*characters.InfoSummary, error) {
	return f.info, f.err
}

func (f *fakeCharacters) List(context.Context, string) ([]gw2.Character, error) {
	return f.list, f.err
}

func (f *fakeCharacters) Gear(context.Context, string, string) (*characters.GearSummary, error) {
	return f.gear, f.err
}

func (f *fakeCharacters) Birthdays(context.Context, string) ([]characters.BirthdayEntry, error) {
	return f.birthdays, f.err
}

type fakeTokens struct {
	info *gw2.TokenInfo
	err  error
}

func (f *fakeTokens) TokenInfo(context.Context, string) (*gw2.TokenInfo, error) {
	return f.info, f.err
}

type fakeKeys struct {
	saved   map[string]*gw2.APIKey
	saveErr error
}

func (f *fakeKeys) SaveKey(_ context.Context, key *gw2.APIKey) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[key.UserID] = key
	return nil
}

func (f *fakeKeys) DeleteKey(_ context.Context, userID string) (bool, error) {
	_, ok := f.saved[userID]
	delete(f.saved, userID)
	return ok, nil
}

type fakeCache struct{}

func (fakeCache) GetCacheStats(context.Context) (*database.CacheStats, error) {
	return &database.CacheStats{Items: 12, ItemStats: 3, Titles: 1, Guilds: 2, APIKeys: 5}, nil
}

type fakeScheduler struct {
	next    time.Time
	running bool
}

func (f fakeScheduler) GetNextRun() time.Time { return f.next }
func (f fakeScheduler) GetSchedule() string   { return "0 0 */6 * * *" }
func (f fakeScheduler) IsRunning() bool       { return f.running }

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(context.Context) error { return f.err }

var inv = Invocation{UserID: "42"}

func setupCommands(service *fakeCharacters) (*Commands, *fakeKeys, *fakeTokens) {
	keys := &fakeKeys{saved: map[string]*gw2.APIKey{}}
	tokens := &fakeTokens{}
	return New(Dependencies{
		Characters: service,
		Tokens:     tokens,
		Keys:       keys,
		Cache:      fakeCache{},
		Cleanup:    fakeScheduler{next: time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)},
	}), keys, tokens
}

func TestCharacterInfo(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{info: &characters.InfoSummary{
		Name:          "dread nought",
		Title:         "Dragonslayer",
		Created:       "2015-08-23",
		PlayedFor:     "20 hours, 0 minutes, and 0 seconds",
		Guild:         &gw2.Guild{Name: "Lions Arch Guard", Tag: "LAG"},
		Deaths:        3,
		DeathsPerHour: 3,
		Color:         0x72C1D9,
		Icon:          "https://example.com/guardian.png",
		Gender:        "female",
		Race:          "norn",
		Profession:    "guardian",
	}})

	resp := cmds.CharacterInfo(context.Background(), inv, "dread nought")
	require.NotNil(t, resp.Embed)

	embed := resp.Embed
	assert.Equal(t, "Dragonslayer", embed.Description)
	assert.Equal(t, 0x72C1D9, embed.Color)
	assert.Equal(t, "dread nought", embed.Author.Name)
	assert.Equal(t, "A female norn guardian", embed.Footer.Text)
	assert.Equal(t, "https://example.com/guardian.png", embed.Thumbnail.URL)

	values := map[string]string{}
	for _, field := range embed.Fields {
		values[field.Name] = field.Value
	}
	assert.Equal(t, "2015-08-23", values["Created at"])
	assert.Equal(t, "[LAG] Lions Arch Guard", values["Guild"])
	assert.Equal(t, "3", values["Deaths"])
	assert.Equal(t, "3.0", values["Deaths per hour"])
}

func TestCharacterInfo_NotFound(t *testing.T) {
	notFound := fmt.Errorf("%w: %w", characters.ErrCharacterNotFound, &gw2.APIError{StatusCode: http.StatusNotFound})
	cmds, _, _ := setupCommands(&fakeCharacters{err: notFound})

	resp := cmds.CharacterInfo(context.Background(), inv, "nobody")
	assert.Equal(t, NotFoundMessage, resp.Content)
	assert.Nil(t, resp.Embed)
}

func TestCharacterInfo_GuildNotFoundIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := charactersmocks.NewMockAPI(ctrl)
	refs := charactersmocks.NewMockReferenceStore(ctrl)
	professions, err := gamedata.Load("")
	require.NoError(t, err)

	guild := "dead-guild"
	api.EXPECT().
		CallAuthorized(gomock.Any(), "42", "characters/Dread%20Nought", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ []string, out any) error {
			*out.(*gw2.Character) = gw2.Character{Name: "Dread Nought", Profession: "Guardian", Age: 3600, Guild: &guild}
			return nil
		})
	refs.EXPECT().Guild(gomock.Any(), guild).
		Return(nil, fmt.Errorf("failed to fetch guild %s: %w", guild, &gw2.APIError{StatusCode: http.StatusNotFound}))

	cmds, _, _ := setupCommands(&fakeCharacters{})
	cmds.characters = characters.NewService(api, refs, professions)

	resp := cmds.CharacterInfo(context.Background(), inv, "dread nought")
	assert.NotEqual(t, NotFoundMessage, resp.Content)
	assert.Contains(t, resp.Content, "Something went wrong")
	assert.Nil(t, resp.Embed)
}

func TestCharacterGear_NotFound(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{err: characters.ErrCharacterNotFound})

	resp := cmds.CharacterGear(context.Background(), inv, "nobody")
	assert.Equal(t, NotFoundMessage, resp.Content)
}

func TestCharacterGear_ItemNotFoundIsReported(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{err: fmt.Errorf("failed to fetch items: %w", &gw2.APIError{StatusCode: http.StatusNotFound})})

	resp := cmds.CharacterGear(context.Background(), inv, "dread nought")
	assert.Contains(t, resp.Content, "Something went wrong")
}

func TestCharacterInfo_EmptyName(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{})

	resp := cmds.CharacterInfo(context.Background(), inv, "  ")
	assert.Contains(t, resp.Content, "Usage")
}

func TestCharacterGear(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{gear: &characters.GearSummary{
		Name:       "dread nought",
		Level:      80,
		Profession: "warrior",
		Icon:       "https://example.com/warrior.png",
		Pieces: []characters.GearPiece{
			{Slot: gw2.SlotHelm, ItemName: "Helm", StatName: "Berserker's", Upgrades: []string{"Rune", "Rune"}},
			{Slot: gw2.SlotBoots, ItemName: "Boots"},
		},
	}})

	resp := cmds.CharacterGear(context.Background(), inv, "dread nought")
	require.NotNil(t, resp.Embed)

	embed := resp.Embed
	assert.Equal(t, "Gear", embed.Description)
	assert.Equal(t, "A level 80 warrior ", embed.Footer.Text)
	assert.Equal(t, "https://example.com/warrior.png", embed.Footer.IconURL)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Berserker's Helm [Helm]", embed.Fields[0].Name)
	assert.Equal(t, "Rune x2", embed.Fields[0].Value)
	assert.False(t, embed.Fields[0].Inline)
	assert.Equal(t, "---", embed.Fields[1].Value)
}

func TestCharacterList(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{list: []gw2.Character{
		{Name: "Dread Nought", Profession: "Warrior"},
		{Name: "Zojja", Profession: "Elementalist"},
	}})

	resp := cmds.CharacterList(context.Background(), inv)
	assert.Equal(t, "<@42>, your characters: ```\nDread Nought (Warrior)\nZojja (Elementalist)```", resp.Content)
}

func TestCharacterBirthdays(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{birthdays: []characters.BirthdayEntry{
		{Name: "Veteran", Year: 2, DaysRemaining: 330},
	}})

	resp := cmds.CharacterBirthdays(context.Background(), inv)
	assert.Equal(t, "<@42>, days until each of your characters birthdays:```\nVeteran 330 days until 2nd birthday```", resp.Content)
}

func TestErrorReporter(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"no key", gw2.ErrNoKey, "add an API key"},
		{"missing scopes", &gw2.MissingScopesError{Missing: []string{"characters"}}, "characters"},
		{"invalid key", &gw2.APIError{StatusCode: http.StatusUnauthorized}, "invalid"},
		{"forbidden", &gw2.APIError{StatusCode: http.StatusForbidden}, "does not have access"},
		{"inactive", &gw2.APIError{StatusCode: http.StatusServiceUnavailable}, "unavailable"},
		{"timeout", context.DeadlineExceeded, "too long"},
		{"no playtime", characters.ErrNoPlaytime, "Something went wrong"},
		{"not found on list", &gw2.APIError{StatusCode: http.StatusNotFound}, "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, _, _ := setupCommands(&fakeCharacters{err: tt.err})
			resp := cmds.CharacterList(context.Background(), inv)
			assert.Contains(t, resp.Content, tt.contains)
			assert.Nil(t, resp.Embed)
		})
	}
}

func TestKeyAdd(t *testing.T) {
	cmds, keys, tokens := setupCommands(&fakeCharacters{})
	tokens.info = &gw2.TokenInfo{Name: "bot key", Permissions: []string{"account", "characters"}}

	resp := cmds.KeyAdd(context.Background(), inv, " ABCD-EFGH ")
	assert.Contains(t, resp.Content, `"bot key"`)
	assert.NotContains(t, resp.Content, "need the `characters` permission")

	saved := keys.saved["42"]
	require.NotNil(t, saved)
	assert.Equal(t, "ABCD-EFGH", saved.Key)
	assert.Equal(t, []string{"account", "characters"}, saved.Permissions)
}

func TestKeyAdd_WarnsAboutMissingScope(t *testing.T) {
	cmds, _, tokens := setupCommands(&fakeCharacters{})
	tokens.info = &gw2.TokenInfo{Name: "account only", Permissions: []string{"account"}}

	resp := cmds.KeyAdd(context.Background(), inv, "KEY")
	assert.Contains(t, resp.Content, "`characters` permission")
}

func TestKeyAdd_Invalid(t *testing.T) {
	cmds, keys, tokens := setupCommands(&fakeCharacters{})
	tokens.err = &gw2.APIError{StatusCode: http.StatusBadRequest, Text: "Invalid key"}

	resp := cmds.KeyAdd(context.Background(), inv, "nope")
	assert.Equal(t, "That API key is invalid.", resp.Content)
	assert.Empty(t, keys.saved)
}

func TestKeyAdd_SaveFails(t *testing.T) {
	cmds, keys, tokens := setupCommands(&fakeCharacters{})
	tokens.info = &gw2.TokenInfo{Name: "k", Permissions: []string{"characters"}}
	keys.saveErr = errors.New("disk full")

	resp := cmds.KeyAdd(context.Background(), inv, "KEY")
	assert.Contains(t, resp.Content, "Failed to save")
}

func TestKeyRemove(t *testing.T) {
	cmds, keys, _ := setupCommands(&fakeCharacters{})

	resp := cmds.KeyRemove(context.Background(), inv)
	assert.Equal(t, "You have no API key to remove.", resp.Content)

	keys.saved["42"] = &gw2.APIKey{UserID: "42"}
	resp = cmds.KeyRemove(context.Background(), inv)
	assert.Contains(t, resp.Content, "was removed")
	assert.Empty(t, keys.saved)
}

func TestHelp(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{})

	resp := cmds.Help()
	require.NotNil(t, resp.Embed)
	assert.Contains(t, resp.Embed.Fields[0].Value, "`!character info <name>`")
}

func TestCacheStatus(t *testing.T) {
	cmds, _, _ := setupCommands(&fakeCharacters{})

	resp := cmds.CacheStatus(context.Background(), inv)
	require.NotNil(t, resp.Embed)

	values := map[string]string{}
	for _, field := range resp.Embed.Fields {
		values[field.Name] = field.Value
	}
	assert.Equal(t, "12", values["Items"])
	assert.Equal(t, "5", values["Registered keys"])
	assert.Equal(t, "2026-05-01 06:00:00 UTC", values["Next cleanup"])
	assert.Equal(t, "-", values["Database"])
}

func TestCacheStatus_HealthAndRunningCleanup(t *testing.T) {
	tests := []struct {
		name     string
		health   fakeHealth
		database string
	}{
		{"reachable", fakeHealth{}, "Reachable"},
		{"unreachable", fakeHealth{err: errors.New("database is closed")}, "Unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := New(Dependencies{
				Characters: &fakeCharacters{},
				Cache:      fakeCache{},
				Cleanup:    fakeScheduler{next: time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC), running: true},
				Health:     tt.health,
			})

			resp := cmds.CacheStatus(context.Background(), inv)
			require.NotNil(t, resp.Embed)

			values := map[string]string{}
			for _, field := range resp.Embed.Fields {
				values[field.Name] = field.Value
			}
			assert.Equal(t, tt.database, values["Database"])
			assert.Equal(t, "Running now", values["Next cleanup"])
		})
	}
}

func TestCacheStatus_Unavailable(t *testing.T) {
	cmds := New(Dependencies{Characters: &fakeCharacters{}})

	resp := cmds.CacheStatus(context.Background(), inv)
	assert.Equal(t, "Cache statistics are not available.", resp.Content)
}

func TestSlashCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range SlashCommands() {
		names[cmd.Name] = true
	}
	assert.True(t, names["character"])
	assert.True(t, names["key"])
	assert.True(t, names["help"])

	character := SlashCommands()[0]
	var sub []string
	for _, opt := range character.Options {
		assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, opt.Type)
		sub = append(sub, opt.Name)
	}
	assert.Equal(t, "info list gear birthdays", strings.Join(sub, " "))
}
