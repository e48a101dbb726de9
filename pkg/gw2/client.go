package gw2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the root of the v2 API
	DefaultBaseURL = "https://api.guildwars2.com/v2"

	// schemaVersion pins the response shape of character records. Under it equipment
	// entries carry a location and inactive template tabs are listed too.
	schemaVersion = "2019-12-19T00:00:00.000Z"

	// maxIDsPerRequest is the API's limit for ?ids= bulk requests
	maxIDsPerRequest = 200
)

// KeyStore resolves the API key registered by a Discord user
type KeyStore interface {
	GetKey(ctx context.Context, userID string) (*APIKey, error)
}

// Client represents the Guild Wars 2 API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	keys       KeyStore
	logger     *zap.Logger
}

// NewClient creates a new API client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, keys KeyStore, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		keys:   keys,
		logger: logger,
	}
}

// CallAuthorized performs a request on behalf of userID with the user's registered key.
// The key must have been granted every scope in scopes.
func (c *Client) CallAuthorized(ctx context.Context, userID, endpoint string, scopes []string, out any) error {
	if c.keys == nil {
		return ErrNoKey
	}

	key, err := c.keys.GetKey(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load API key: %w", err)
	}
	if key == nil {
		return ErrNoKey
	}

	if missing := key.MissingScopes(scopes); len(missing) > 0 {
		return &MissingScopesError{Missing: missing}
	}

	return c.Get(ctx, endpoint, key.Key, out)
}

// Get fetches endpoint (a path relative to the base URL, query included) and decodes
// the JSON body into out. key may be empty for public endpoints.
func (c *Client) Get(ctx context.Context, endpoint, key string, out any) error {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("X-Schema-Version", schemaVersion)
	req.Header.Set("Accept", "application/json")
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("gw2 api request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	// 206 is returned for bulk requests where only some ids exist
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return newAPIError(endpoint, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func newAPIError(endpoint string, resp *http.Response) *APIError {
	apiErr := &APIError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Text string `json:"text"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Text = payload.Text
	}
	return apiErr
}

// TokenInfo describes the given key
func (c *Client) TokenInfo(ctx context.Context, key string) (*TokenInfo, error) {
	var info TokenInfo
	if err := c.Get(ctx, "tokeninfo", key, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Items fetches items by id. Unknown ids are silently absent from the result.
func (c *Client) Items(ctx context.Context, ids []int) ([]Item, error) {
	var items []Item
	for _, chunk := range chunkIDs(ids) {
		var page []Item
		err := c.Get(ctx, "items?ids="+joinIDs(chunk), "", &page)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		items = append(items, page...)
	}
	return items, nil
}

// ItemStats fetches stat sets by id. Unknown ids are silently absent from the result.
func (c *Client) ItemStats(ctx context.Context, ids []int) ([]ItemStat, error) {
	var stats []ItemStat
	for _, chunk := range chunkIDs(ids) {
		var page []ItemStat
		err := c.Get(ctx, "itemstats?ids="+joinIDs(chunk), "", &page)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		stats = append(stats, page...)
	}
	return stats, nil
}

// Title fetches a single title
func (c *Client) Title(ctx context.Context, id int) (*Title, error) {
	var title Title
	if err := c.Get(ctx, "titles/"+strconv.Itoa(id), "", &title); err != nil {
		return nil, err
	}
	return &title, nil
}

// Guild fetches the public details of a guild
func (c *Client) Guild(ctx context.Context, id string) (*Guild, error) {
	var guild Guild
	if err := c.Get(ctx, "guild/"+id, "", &guild); err != nil {
		return nil, err
	}
	return &guild, nil
}

func chunkIDs(ids []int) [][]int {
	var chunks [][]int
	for len(ids) > maxIDsPerRequest {
		chunks = append(chunks, ids[:maxIDsPerRequest])
		ids = ids[maxIDsPerRequest:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
