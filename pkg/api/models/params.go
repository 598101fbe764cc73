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

package models

import "time"

// MediaEvent is a playback lifecycle event reported by a host player.
// Position and Duration are in seconds and optional; when present they
// update the media element's snapshot before the event is applied.
type MediaEvent struct {
	Position *float64 `json:"position,omitempty" validate:"omitempty,gte=0"`
	Duration *float64 `json:"duration,omitempty" validate:"omitempty,gte=0"`
	MediaID  string   `json:"mediaId" validate:"required,mediaid,max=512"`
	Type     string   `json:"type" validate:"required,oneof=play pause seeked timeupdate ended detach"`
}

// MediaEventParams is the REST body for posting an event; the media ID
// comes from the URL.
type MediaEventParams struct {
	Position *float64 `json:"position,omitempty" validate:"omitempty,gte=0"`
	Duration *float64 `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Type     string   `json:"type" validate:"required,oneof=play pause seeked timeupdate ended detach"`
}

type PlayedParams struct {
	PlayedAt       time.Time `json:"playedAt"`
	MediaID        string    `json:"mediaId"`
	NeededPlaytime float64   `json:"neededPlaytime"`
	Playtime       float64   `json:"playtime"`
	Epoch          int       `json:"epoch"`
}

type DetachedParams struct {
	MediaID string `json:"mediaId"`
}

type SessionResponse struct {
	UpdatedAt      time.Time `json:"updatedAt"`
	NeededPlaytime *float64  `json:"neededPlaytime"`
	MediaID        string    `json:"mediaId"`
	State          string    `json:"state"`
	Position       float64   `json:"position"`
	Duration       float64   `json:"duration"`
	Playtime       float64   `json:"playtime"`
	Epoch          int       `json:"epoch"`
	Plays          int       `json:"plays"`
	Played         bool      `json:"played"`
}

type SessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type MediaIDParams struct {
	MediaID string `json:"mediaId" validate:"required,mediaid,max=512"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}
