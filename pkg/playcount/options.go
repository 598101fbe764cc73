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

package playcount

import (
	"math"
	"time"
)

const (
	// TickInterval is how often accumulated playtime advances while media
	// is playing.
	TickInterval = 500 * time.Millisecond

	// DefaultPlayTimerPercent is used when neither a play timer nor a
	// percentage is configured.
	DefaultPlayTimerPercent = 0.1

	tickSeconds = 0.5
)

// Options configures how much of a media item must be watched before it
// counts as a play. Both fields are optional. A present PlayTimer always
// wins over PlayTimerPercent, including a present zero.
type Options struct {
	// PlayTimer is an absolute threshold in seconds.
	PlayTimer *float64
	// PlayTimerPercent is a fraction of the media duration in (0,1].
	PlayTimerPercent *float64
}

// Percent returns the configured percentage or the default.
func (o Options) Percent() float64 {
	if o.PlayTimerPercent == nil {
		return DefaultPlayTimerPercent
	}
	return *o.PlayTimerPercent
}

// NeededPlaytime computes the threshold in seconds for a media item of the
// given duration. The second return value is false when the threshold can
// never be reached: an unknown duration, or a computed value that is not a
// finite positive number.
func NeededPlaytime(opts Options, duration float64) (float64, bool) {
	var needed float64
	if opts.PlayTimer != nil {
		needed = *opts.PlayTimer
	} else {
		if !reachable(duration) {
			return 0, false
		}
		needed = duration * opts.Percent()
	}

	if !reachable(needed) {
		return needed, false
	}
	return needed, true
}

func reachable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
