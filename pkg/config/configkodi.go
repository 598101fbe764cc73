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

package config

const (
	DefaultKodiURL          = "http://localhost:8080/jsonrpc"
	DefaultKodiWebsocketURL = "ws://localhost:9090/jsonrpc"
)

// Kodi configures the Kodi host integration.
type Kodi struct {
	Enabled      *bool  `toml:"enabled,omitempty"`
	URL          string `toml:"url,omitempty" validate:"omitempty,url"`
	WebsocketURL string `toml:"websocket_url,omitempty" validate:"omitempty,url"`
}

// KodiEnabled returns true if play events should be read from Kodi.
// Disabled by default.
func (c *Instance) KodiEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Kodi.Enabled == nil {
		return false
	}
	return *c.vals.Kodi.Enabled
}

func (c *Instance) SetKodiEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Kodi.Enabled = &enabled
}

// KodiURL returns the JSON-RPC HTTP endpoint.
func (c *Instance) KodiURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Kodi.URL == "" {
		return DefaultKodiURL
	}
	return c.vals.Kodi.URL
}

// KodiWebsocketURL returns the JSON-RPC WebSocket endpoint used for
// player notifications.
func (c *Instance) KodiWebsocketURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Kodi.WebsocketURL == "" {
		return DefaultKodiWebsocketURL
	}
	return c.vals.Kodi.WebsocketURL
}
