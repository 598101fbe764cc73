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

import "strconv"

const (
	DefaultAPIPort   = 7498
	DefaultRateLimit = 20.0
	DefaultRateBurst = 40
)

type Service struct {
	APIPort        *int     `toml:"api_port,omitempty" validate:"omitempty,min=1,max=65535"`
	RateLimit      *float64 `toml:"rate_limit,omitempty" validate:"omitempty,gte=0"`
	RateBurst      *int     `toml:"rate_burst,omitempty" validate:"omitempty,min=1"`
	APIListen      string   `toml:"api_listen,omitempty" validate:"omitempty,hostname_port"`
	AllowedOrigins []string `toml:"allowed_origins,omitempty"`
	AllowedIPs     []string `toml:"allowed_ips,omitempty"`
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiPortLocked()
}

// apiPortLocked returns the API port. Caller must hold mu (read or write).
func (c *Instance) apiPortLocked() int {
	if c.vals.Service.APIPort == nil {
		return DefaultAPIPort
	}
	return *c.vals.Service.APIPort
}

func (c *Instance) SetAPIPort(port int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Service.APIPort = &port
}

// APIListen returns the listen address, defaulting to all interfaces on the
// API port.
func (c *Instance) APIListen() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Service.APIListen == "" {
		return ":" + strconv.Itoa(c.apiPortLocked())
	}
	return c.vals.Service.APIListen
}

// AllowedOrigins returns extra CORS origins allowed to post events.
func (c *Instance) AllowedOrigins() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Service.AllowedOrigins
}

// AllowedIPs returns the IPs and CIDRs allowed to reach the API. Empty
// means unrestricted.
func (c *Instance) AllowedIPs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Service.AllowedIPs
}

// RateLimit returns the per-IP request rate in requests per second. Zero
// disables limiting.
func (c *Instance) RateLimit() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Service.RateLimit == nil {
		return DefaultRateLimit
	}
	return *c.vals.Service.RateLimit
}

func (c *Instance) RateBurst() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Service.RateBurst == nil {
		return DefaultRateBurst
	}
	return *c.vals.Service.RateBurst
}
