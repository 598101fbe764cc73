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
	"context"
	"encoding/json"
)

// KodiClient defines the Kodi JSON-RPC operations used to look up the
// state of a player.
type KodiClient interface {
	// GetActivePlayers retrieves all active players in Kodi
	GetActivePlayers(ctx context.Context) ([]Player, error)

	// GetPlayerProperties returns the current position and total time of
	// a player
	GetPlayerProperties(ctx context.Context, playerID int) (PlayerProperties, error)

	// GetPlayerItem returns the item a player is playing
	GetPlayerItem(ctx context.Context, playerID int) (Item, error)

	// GetURL returns the current Kodi API URL
	GetURL() string

	// SetURL sets the Kodi API URL
	SetURL(url string)

	// APIRequest makes a raw JSON-RPC request to Kodi API
	APIRequest(ctx context.Context, method APIMethod, params any) (json.RawMessage, error)
}
