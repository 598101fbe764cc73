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

import (
	"math"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/playcount"
	"github.com/rs/zerolog/log"
)

// Playcount configures when a viewing session counts as a play.
type Playcount struct {
	// PlayTimer is an absolute threshold in seconds and takes precedence
	// over PlayTimerPercent when set.
	PlayTimer *float64 `toml:"play_timer,omitempty"`
	// PlayTimerPercent is a fraction of the media length in (0,1].
	PlayTimerPercent *float64 `toml:"play_timer_percent,omitempty"`
}

// PlayTimer returns the absolute threshold in seconds, if configured.
func (c *Instance) PlayTimer() (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Playcount.PlayTimer == nil {
		return 0, false
	}
	return *c.vals.Playcount.PlayTimer, true
}

// PlayTimerPercent returns the configured fraction, or 0.1 by default.
func (c *Instance) PlayTimerPercent() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Playcount.PlayTimerPercent == nil {
		return playcount.DefaultPlayTimerPercent
	}
	return *c.vals.Playcount.PlayTimerPercent
}

// PlaycountOptions returns the tracker options. The returned pointers are
// copies and safe to keep.
func (c *Instance) PlaycountOptions() playcount.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var opts playcount.Options
	if v := c.vals.Playcount.PlayTimer; v != nil {
		timer := *v
		opts.PlayTimer = &timer
	}
	if v := c.vals.Playcount.PlayTimerPercent; v != nil {
		percent := *v
		opts.PlayTimerPercent = &percent
	}
	return opts
}

// SetPlayTimer sets the absolute threshold. Pass nil to fall back to the
// percentage.
func (c *Instance) SetPlayTimer(seconds *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Playcount.PlayTimer = seconds
}

// SetPlayTimerPercent sets the percentage threshold. Pass nil for the
// default.
func (c *Instance) SetPlayTimerPercent(percent *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Playcount.PlayTimerPercent = percent
}

// warnPlaycount logs threshold settings that will stop plays from ever
// being counted. They are kept as-is rather than rejected.
func warnPlaycount(p Playcount) {
	if p.PlayTimer != nil && !validThreshold(*p.PlayTimer) {
		log.Warn().
			Float64("play_timer", *p.PlayTimer).
			Msg("play_timer is not a positive number, plays will never be counted")
	}
	if p.PlayTimer == nil && p.PlayTimerPercent != nil {
		percent := *p.PlayTimerPercent
		if !validThreshold(percent) || percent > 1 {
			log.Warn().
				Float64("play_timer_percent", percent).
				Msg("play_timer_percent should be between 0 and 1")
		}
	}
}

func validThreshold(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
