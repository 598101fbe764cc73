// Zaparoo Playcount
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Playcount.
//
// Zaparoo Playcount is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Playcount is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Playcount.  If not, see <http://www.gnu.org/licenses/>.

package kodi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/config"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/helpers/syncutil"
	"github.com/google/uuid"
)

const requestTimeout = 5 * time.Second

var ErrAPI = errors.New("error from kodi api")

// Client implements the KodiClient interface
type Client struct {
	httpClient *http.Client
	url        string
	mu         syncutil.RWMutex
}

// Ensure Client implements KodiClient at compile time
var _ KodiClient = (*Client)(nil)

// NewClient creates a Kodi client for the configured JSON-RPC URL. A nil
// config uses the default URL.
func NewClient(cfg *config.Instance) *Client {
	url := config.DefaultKodiURL
	if cfg != nil {
		url = cfg.KodiURL()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// GetActivePlayers retrieves all active players in Kodi
func (c *Client) GetActivePlayers(ctx context.Context) ([]Player, error) {
	result, err := c.APIRequest(ctx, APIMethodPlayerGetActivePlayers, nil)
	if err != nil {
		return nil, err
	}

	var players []Player
	err = json.Unmarshal(result, &players)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal GetActivePlayers response: %w", err)
	}

	return players, nil
}

// GetPlayerProperties returns the position and total time of a player
func (c *Client) GetPlayerProperties(ctx context.Context, playerID int) (PlayerProperties, error) {
	result, err := c.APIRequest(ctx, APIMethodPlayerGetProperties, PlayerGetPropertiesParams{
		PlayerID:   playerID,
		Properties: []string{"time", "totaltime"},
	})
	if err != nil {
		return PlayerProperties{}, err
	}

	var props PlayerProperties
	err = json.Unmarshal(result, &props)
	if err != nil {
		return PlayerProperties{}, fmt.Errorf("failed to unmarshal GetProperties response: %w", err)
	}

	return props, nil
}

// GetPlayerItem returns the item a player is playing
func (c *Client) GetPlayerItem(ctx context.Context, playerID int) (Item, error) {
	result, err := c.APIRequest(ctx, APIMethodPlayerGetItem, PlayerGetItemParams{
		PlayerID:   playerID,
		Properties: []string{"title", "file"},
	})
	if err != nil {
		return Item{}, err
	}

	var resp PlayerGetItemResponse
	err = json.Unmarshal(result, &resp)
	if err != nil {
		return Item{}, fmt.Errorf("failed to unmarshal GetItem response: %w", err)
	}

	return resp.Item, nil
}

// GetURL returns the current Kodi API URL
func (c *Client) GetURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.url
}

// SetURL sets the Kodi API URL
func (c *Client) SetURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = url
}

// APIRequest makes a raw JSON-RPC request to Kodi API
func (c *Client) APIRequest(ctx context.Context, method APIMethod, params any) (json.RawMessage, error) {
	req := APIPayload{
		JSONRPC: "2.0",
		ID:      uuid.New().String(),
		Method:  method,
		Params:  params,
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	kodiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GetURL(), bytes.NewBuffer(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	kodiReq.Header.Set("Content-Type", "application/json")
	kodiReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(kodiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore close error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrAPI, resp.StatusCode)
	}

	var apiResp APIResponse
	err = json.Unmarshal(body, &apiResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrAPI, apiResp.Error.Message)
	}

	return apiResp.Result, nil
}
