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

// Package playcount decides whether a viewing session counts as a play.
//
// A Tracker accumulates watched time in fixed ticks while its media is
// playing and fires a callback once the accumulated time reaches a threshold
// derived from Options. Each media element gets its own Tracker.
package playcount

import (
	"github.com/ZaparooProject/zaparoo-playcount/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// Media reports the playback position and total length of a media element,
// both in seconds. Duration may be zero or NaN before metadata has loaded.
type Media interface {
	CurrentTime() float64
	Duration() float64
}

// State is the tracker's position in the per-epoch state machine.
type State int

const (
	// StateIdle means no tick scheduler is running and the epoch has not
	// been played yet.
	StateIdle State = iota
	// StateAccumulating means a tick scheduler is running.
	StateAccumulating
	// StatePlayed means the threshold was reached for this epoch.
	StatePlayed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StatePlayed:
		return "played"
	default:
		return "unknown"
	}
}

// Status is a point-in-time copy of a tracker's counters.
type Status struct {
	State          State
	Playtime       float64
	NeededPlaytime float64
	Epoch          int
	NeededKnown    bool
	Played         bool
}

// Tracker is the play threshold state machine for one media element.
type Tracker struct {
	media      Media
	scheduler  Scheduler
	onPlayed   func()
	cancel     CancelFunc
	opts       Options
	needed     float64
	playtime   float64
	generation uint64
	epoch      int
	mu         syncutil.Mutex
	neededSet  bool
	played     bool
}

// NewTracker creates a tracker in the idle state. onPlayed is called once
// per epoch when the threshold is reached and may be nil.
func NewTracker(opts Options, media Media, scheduler Scheduler, onPlayed func()) *Tracker {
	return &Tracker{
		opts:      opts,
		media:     media,
		scheduler: scheduler,
		onPlayed:  onPlayed,
	}
}

// OnPlay handles playback starting or resuming. Repeated calls while
// accumulating are no-ops. If the epoch was already played and the media
// is back at position zero, a new epoch begins.
func (t *Tracker) OnPlay() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.neededSet {
		t.computeNeeded()
	}

	if t.played && t.media.CurrentTime() == 0 {
		t.stopTimer()
		t.played = false
		t.playtime = 0
		t.epoch++
		log.Debug().Int("epoch", t.epoch).Msg("playcount: restarted from zero, new epoch")
	}

	if t.cancel == nil && !t.played {
		t.startTimer()
	}
}

// OnPause stops accumulating. Playtime gathered so far is kept.
func (t *Tracker) OnPause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimer()
}

// Detach stops any running scheduler. It is used when the media element
// goes away; the tracker remains usable afterwards.
func (t *Tracker) Detach() {
	t.OnPause()
}

// State returns the current state machine state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state()
}

// Playtime returns the seconds accumulated in the current epoch.
func (t *Tracker) Playtime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playtime
}

// NeededPlaytime returns the threshold for this epoch and whether it has
// been fixed yet.
func (t *Tracker) NeededPlaytime() (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.needed, t.neededSet
}

// Played reports whether the current epoch has reached its threshold.
func (t *Tracker) Played() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.played
}

// Epoch returns the number of restarts seen so far, starting at 0.
func (t *Tracker) Epoch() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.epoch
}

// Status returns a consistent snapshot of all counters.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{
		State:          t.state(),
		Playtime:       t.playtime,
		NeededPlaytime: t.needed,
		NeededKnown:    t.neededSet,
		Played:         t.played,
		Epoch:          t.epoch,
	}
}

func (t *Tracker) state() State {
	switch {
	case t.played:
		return StatePlayed
	case t.cancel != nil:
		return StateAccumulating
	default:
		return StateIdle
	}
}

// computeNeeded fixes the threshold if the current duration allows it. An
// unreachable threshold is left unset and retried on the next play.
func (t *Tracker) computeNeeded() {
	duration := t.media.Duration()
	needed, ok := NeededPlaytime(t.opts, duration)
	if !ok {
		log.Debug().
			Float64("duration", duration).
			Float64("needed", needed).
			Msg("playcount: threshold unreachable, plays will not be counted")
		return
	}
	t.needed = needed
	t.neededSet = true
	log.Debug().
		Float64("duration", duration).
		Float64("needed", needed).
		Msg("playcount: needed playtime set")
}

func (t *Tracker) startTimer() {
	t.generation++
	gen := t.generation
	t.cancel = t.scheduler.Every(TickInterval, func() {
		t.tick(gen)
	})
}

func (t *Tracker) stopTimer() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
}

// tick credits one interval of playtime. Ticks from a scheduler that has
// since been cancelled are dropped so time is never counted twice.
func (t *Tracker) tick(gen uint64) {
	t.mu.Lock()
	if t.cancel == nil || gen != t.generation {
		t.mu.Unlock()
		return
	}

	t.playtime += tickSeconds
	if !t.neededSet || t.playtime < t.needed {
		t.mu.Unlock()
		return
	}

	t.played = true
	t.stopTimer()
	playtime := t.playtime
	epoch := t.epoch
	onPlayed := t.onPlayed
	t.mu.Unlock()

	log.Info().
		Float64("playtime", playtime).
		Int("epoch", epoch).
		Msg("playcount: play threshold reached")

	if onPlayed != nil {
		onPlayed()
	}
}
