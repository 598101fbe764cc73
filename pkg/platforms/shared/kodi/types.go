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
	"encoding/json"
	"time"
)

// Player represents an active Kodi player
type Player struct {
	Type string `json:"type"`
	ID   int    `json:"playerid"`
}

// Time is Kodi's split representation of a playback position.
type Time struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	Seconds      int `json:"seconds"`
	Milliseconds int `json:"milliseconds"`
}

// Duration converts the split time to a time.Duration.
func (t Time) Duration() time.Duration {
	return time.Duration(t.Hours)*time.Hour +
		time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second +
		time.Duration(t.Milliseconds)*time.Millisecond
}

// InSeconds returns the time as fractional seconds.
func (t Time) InSeconds() float64 {
	return t.Duration().Seconds()
}

// Item is a media item as reported by Kodi players and notifications.
type Item struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	Title string `json:"title,omitempty"`
	File  string `json:"file,omitempty"`
	ID    int    `json:"id,omitempty"`
}

// APIMethod represents Kodi JSON-RPC API methods
type APIMethod string

// Kodi API methods
const (
	APIMethodPlayerGetActivePlayers APIMethod = "Player.GetActivePlayers"
	APIMethodPlayerGetProperties    APIMethod = "Player.GetProperties"
	APIMethodPlayerGetItem          APIMethod = "Player.GetItem"
	APIMethodJSONRPCPing            APIMethod = "JSONRPC.Ping"
)

// Kodi player notifications
const (
	NotificationPlayerOnPlay   = "Player.OnPlay"
	NotificationPlayerOnResume = "Player.OnResume"
	NotificationPlayerOnPause  = "Player.OnPause"
	NotificationPlayerOnSeek   = "Player.OnSeek"
	NotificationPlayerOnStop   = "Player.OnStop"
)

// APIPayload represents a Kodi JSON-RPC request
type APIPayload struct {
	Params  any       `json:"params,omitempty"`
	JSONRPC string    `json:"jsonrpc"`
	ID      string    `json:"id"`
	Method  APIMethod `json:"method"`
}

// APIError represents a Kodi JSON-RPC error
type APIError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// APIResponse represents a Kodi JSON-RPC response
type APIResponse struct {
	Error   *APIError       `json:"error,omitempty"`
	ID      string          `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
}

// PlayerGetPropertiesParams represents parameters for Player.GetProperties
type PlayerGetPropertiesParams struct {
	Properties []string `json:"properties"`
	PlayerID   int      `json:"playerid"`
}

// PlayerProperties is the subset of Player.GetProperties used for tracking.
type PlayerProperties struct {
	Time      Time `json:"time"`
	TotalTime Time `json:"totaltime"`
}

// PlayerGetItemParams represents parameters for Player.GetItem
type PlayerGetItemParams struct {
	Properties []string `json:"properties,omitempty"`
	PlayerID   int      `json:"playerid"`
}

// PlayerGetItemResponse represents the response from Player.GetItem
type PlayerGetItemResponse struct {
	Item Item `json:"item"`
}

// Notification is a server-pushed JSON-RPC message from Kodi's WebSocket.
type Notification struct {
	Method  string             `json:"method"`
	JSONRPC string             `json:"jsonrpc"`
	Params  NotificationParams `json:"params"`
}

type NotificationParams struct {
	Sender string           `json:"sender"`
	Data   NotificationData `json:"data"`
}

// NotificationData is the payload of Player.* notifications. Player.Time is
// only set on seeks and End only on stops.
type NotificationData struct {
	Item   Item               `json:"item"`
	Player NotificationPlayer `json:"player"`
	End    bool               `json:"end,omitempty"`
}

type NotificationPlayer struct {
	Time     *Time `json:"time,omitempty"`
	PlayerID int   `json:"playerid"`
	Speed    int   `json:"speed"`
}
