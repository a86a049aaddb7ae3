package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/coachtip/internal/models"
	"github.com/claude/coachtip/internal/storage"
	"github.com/google/uuid"
)

// findLimit is how many search results FindExercise considers.
const findLimit = 50

// HTTPClient implements DataSource by calling the CoachTip REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// catalog lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("httpclient: %s: %w", path, storage.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// SearchExercises calls GET /api/v1/exercises.
func (c *HTTPClient) SearchExercises(ctx context.Context, query string, limit int) ([]models.ExerciseRow, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/exercises", params)
	if err != nil {
		return nil, err
	}

	var rows []models.ExerciseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return rows, nil
}

// FindExercise searches by name and applies the same preference as the
// storage backends: an exact name match first, then the shortest name that
// contains the query.
func (c *HTTPClient) FindExercise(ctx context.Context, name string) (*models.ExerciseRow, error) {
	key := storage.NameKey(name)
	if key == "" {
		return nil, storage.ErrNotFound
	}

	rows, err := c.SearchExercises(ctx, key, findLimit)
	if err != nil {
		return nil, err
	}

	var best *models.ExerciseRow
	for i := range rows {
		k := storage.NameKey(rows[i].Name)
		if k == key {
			return &rows[i], nil
		}
		if strings.Contains(k, key) && (best == nil || len(rows[i].Name) < len(best.Name)) {
			best = &rows[i]
		}
	}
	if best == nil {
		return nil, storage.ErrNotFound
	}
	return best, nil
}

// GetClient calls GET /api/v1/clients/{id}.
func (c *HTTPClient) GetClient(ctx context.Context, id uuid.UUID) (*models.ClientRow, error) {
	body, err := c.get(ctx, "/api/v1/clients/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var client models.ClientRow
	if err := json.Unmarshal(body, &client); err != nil {
		return nil, fmt.Errorf("httpclient: decode client: %w", err)
	}
	return &client, nil
}
