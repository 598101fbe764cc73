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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_DefaultThresholdFiresOnTwentiethTick(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{}, 100)
	env.tracker.OnPlay()

	needed, ok := env.tracker.NeededPlaytime()
	require.True(t, ok)
	assert.InDelta(t, 10.0, needed, 0)

	env.sched.tick(19)
	assert.Equal(t, 0, env.played, "no signal before 10s")
	assert.InDelta(t, 9.5, env.tracker.Playtime(), 0)
	assert.Equal(t, StateAccumulating, env.tracker.State())

	env.sched.tick(1)
	assert.Equal(t, 1, env.played)
	assert.True(t, env.tracker.Played())
	assert.Equal(t, StatePlayed, env.tracker.State())
	assert.Empty(t, env.sched.active(), "scheduler cancelled after signal")

	env.sched.tick(50)
	assert.Equal(t, 1, env.played)
}

func TestTracker_TickInterval(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{}, 100)
	env.tracker.OnPlay()

	require.Len(t, env.sched.jobs, 1)
	assert.Equal(t, TickInterval, env.sched.jobs[0].interval)
}

func TestTracker_ZeroPlayTimerNeverFires(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{PlayTimer: float64Ptr(0)}, 100)
	env.tracker.OnPlay()
	env.sched.tick(1000)

	assert.Equal(t, 0, env.played)
	assert.False(t, env.tracker.Played())
	_, ok := env.tracker.NeededPlaytime()
	assert.False(t, ok)
}

func TestTracker_UnknownDurationNeverFires(t *testing.T) {
	t.Parallel()

	for _, duration := range []float64{0, math.NaN(), math.Inf(1), -10} {
		env := newTrackerEnv(Options{}, duration)
		env.tracker.OnPlay()
		env.sched.tick(1000)
		assert.Equal(t, 0, env.played, "duration %v", duration)
	}
}

func TestTracker_DurationLoadedLater(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{}, math.NaN())
	env.tracker.OnPlay()
	env.sched.tick(4)
	env.tracker.OnPause()

	env.media.duration = 20
	env.tracker.OnPlay()

	needed, ok := env.tracker.NeededPlaytime()
	require.True(t, ok)
	assert.InDelta(t, 2.0, needed, 0)
	assert.Equal(t, 0, env.played)

	env.sched.tick(1)
	assert.Equal(t, 1, env.played, "time counted before metadata loaded still counts")
}

func TestTracker_NeededPlaytimeFixedOnceSet(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{}, 100)
	env.tracker.OnPlay()
	env.tracker.OnPause()

	env.media.duration = 1000
	env.tracker.OnPlay()

	needed, _ := env.tracker.NeededPlaytime()
	assert.InDelta(t, 10.0, needed, 0)
}

func TestTracker_PauseKeepsPlaytime(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{PlayTimer: float64Ptr(5)}, 100)

	env.tracker.OnPlay()
	env.sched.tick(4)
	env.tracker.OnPause()
	assert.Equal(t, StateIdle, env.tracker.State())
	assert.InDelta(t, 2.0, env.tracker.Playtime(), 0)

	env.sched.tick(10)
	assert.InDelta(t, 2.0, env.tracker.Playtime(), 0, "no accumulation while paused")

	env.tracker.OnPlay()
	env.sched.tick(5)
	assert.InDelta(t, 4.5, env.tracker.Playtime(), 0)
	assert.Equal(t, 0, env.played)

	env.sched.tick(1)
	assert.Equal(t, 1, env.played)
}

func TestTracker_RepeatedPlayIsIdempotent(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{PlayTimer: float64Ptr(5)}, 100)
	env.tracker.OnPlay()
	env.tracker.OnPlay()
	env.tracker.OnPlay()

	assert.Len(t, env.sched.active(), 1)

	env.sched.tick(2)
	assert.InDelta(t, 1.0, env.tracker.Playtime(), 0)
}

func TestTracker_PauseIsSafeWhenIdle(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{}, 100)
	env.tracker.OnPause()
	env.tracker.OnPause()
	env.tracker.Detach()

	assert.Equal(t, StateIdle, env.tracker.State())
	assert.Empty(t, env.sched.jobs)
}

func TestTracker_PlayedAbsorbsPlayAwayFromZero(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{PlayTimer: float64Ptr(5)}, 100)
	env.tracker.OnPlay()
	env.sched.tick(10)
	require.Equal(t, 1, env.played)

	env.media.position = 42
	env.tracker.OnPause()
	env.tracker.OnPlay()
	env.sched.tick(20)

	assert.Equal(t, 1, env.played)
	assert.InDelta(t, 5.0, env.tracker.Playtime(), 0, "counters not reset")
	assert.Equal(t, StatePlayed, env.tracker.State())
	assert.Empty(t, env.sched.active())
	assert.Equal(t, 0, env.tracker.Epoch())
}

func TestTracker_RestartAtZeroStartsNewEpoch(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{PlayTimer: float64Ptr(5)}, 100)
	env.tracker.OnPlay()
	env.sched.tick(10)
	require.Equal(t, 1, env.played)

	env.media.position = 0
	env.tracker.OnPlay()

	assert.False(t, env.tracker.Played())
	assert.InDelta(t, 0.0, env.tracker.Playtime(), 0)
	assert.Equal(t, 1, env.tracker.Epoch())
	assert.Equal(t, StateAccumulating, env.tracker.State())

	env.sched.tick(9)
	assert.Equal(t, 1, env.played)
	env.sched.tick(1)
	assert.Equal(t, 2, env.played)
}

func TestTracker_RestartKeepsThreshold(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{}, 100)
	env.tracker.OnPlay()
	env.sched.tick(20)
	require.Equal(t, 1, env.played)

	env.media.duration = 10
	env.tracker.OnPlay()

	needed, _ := env.tracker.NeededPlaytime()
	assert.InDelta(t, 10.0, needed, 0)
}

func TestTracker_RestartBeforePlayedDoesNotReset(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{PlayTimer: float64Ptr(5)}, 100)
	env.tracker.OnPlay()
	env.sched.tick(6)
	env.tracker.OnPause()

	env.media.position = 0
	env.tracker.OnPlay()

	assert.InDelta(t, 3.0, env.tracker.Playtime(), 0)
	assert.Equal(t, 0, env.tracker.Epoch())
}

func TestTracker_StaleTickIsDropped(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{PlayTimer: float64Ptr(5)}, 100)
	env.tracker.OnPlay()
	stale := env.sched.jobs[0].fn

	env.tracker.OnPause()
	env.tracker.OnPlay()
	require.Len(t, env.sched.active(), 1)

	stale()
	assert.InDelta(t, 0.0, env.tracker.Playtime(), 0)

	env.sched.tick(1)
	assert.InDelta(t, 0.5, env.tracker.Playtime(), 0)
}

func TestTracker_NilCallback(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	tracker := NewTracker(Options{PlayTimer: float64Ptr(0.5)}, &fakeMedia{duration: 10}, sched, nil)
	tracker.OnPlay()

	assert.NotPanics(t, func() {
		sched.tick(1)
	})
	assert.True(t, tracker.Played())
}

func TestTracker_Status(t *testing.T) {
	t.Parallel()

	env := newTrackerEnv(Options{}, 50)
	st := env.tracker.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.False(t, st.NeededKnown)

	env.tracker.OnPlay()
	env.sched.tick(3)

	st = env.tracker.Status()
	assert.Equal(t, StateAccumulating, st.State)
	assert.True(t, st.NeededKnown)
	assert.InDelta(t, 5.0, st.NeededPlaytime, 0)
	assert.InDelta(t, 1.5, st.Playtime, 0)
	assert.False(t, st.Played)
	assert.Equal(t, 0, st.Epoch)
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "accumulating", StateAccumulating.String())
	assert.Equal(t, "played", StatePlayed.String())
	assert.Equal(t, "unknown", State(99).String())
}
