// Package catalog fetches equipment listings from the D&D 5e API.
// It is a stateless read-only collaborator: the store proxies its
// results to players so they can pick item names to trade. It has no
// interaction with the trade engine or the ledger.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://www.dnd5eapi.co"

// Ref is one catalog entry as listed by the upstream API.
type Ref struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type listResponse struct {
	Results []Ref `json:"results"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Equipment lists all mundane equipment.
func (c *Client) Equipment(ctx context.Context) ([]Ref, error) {
	return c.list(ctx, "/api/equipment")
}

// MagicItems lists all magic items.
func (c *Client) MagicItems(ctx context.Context) ([]Ref, error) {
	return c.list(ctx, "/api/magic-items")
}

// EquipmentByIndex returns the upstream document for one equipment
// index verbatim, so the shell can serve it without reshaping.
func (c *Client) EquipmentByIndex(ctx context.Context, index string) (json.RawMessage, error) {
	body, err := c.get(ctx, "/api/equipment/"+url.PathEscape(index))
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

func (c *Client) list(ctx context.Context, path string) ([]Ref, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var lr listResponse

	err = json.Unmarshal(body, &lr)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return lr.Results, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return body, nil
}
