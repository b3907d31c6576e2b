package feedapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/luckyorbit/leaderboard-backend/internal/models"
)

// Feed sources
const (
	SourceHTTP = "http"
	SourceFile = "file"
)

// ErrUnavailable covers every failure mode that should render as the single
// "leaderboard unavailable" state: transport errors, non-success status,
// malformed JSON and non-array payloads. A valid empty array is not an error.
var ErrUnavailable = errors.New("leaderboard feed unavailable")

// Client fetches raw leaderboard entries from a static JSON file or an HTTP
// endpoint returning a JSON array
type Client struct {
	source string
	url    string
	path   string
	client *http.Client
}

// NewClient creates a new feed client
func NewClient(source, feedURL, path string) *Client {
	return &Client{
		source: source,
		url:    feedURL,
		path:   path,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchEntries retrieves the current raw entry list
func (c *Client) FetchEntries(ctx context.Context) ([]models.Entry, error) {
	if c.source == SourceFile {
		return c.fetchFromFile()
	}
	return c.fetchFromURL(ctx)
}

func (c *Client) fetchFromURL(ctx context.Context) ([]models.Entry, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid feed URL: %v", ErrUnavailable, err)
	}

	// Cache-busting timestamp so repeated polls observe fresh data
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return decodeEntries(body)
}

func (c *Client) fetchFromFile() ([]models.Entry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return decodeEntries(data)
}

func decodeEntries(data []byte) ([]models.Entry, error) {
	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if entries == nil {
		// "null" unmarshals cleanly but is not an array
		return nil, fmt.Errorf("%w: payload is not an array", ErrUnavailable)
	}
	return entries, nil
}
