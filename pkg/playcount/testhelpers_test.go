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
	"time"
)

type fakeMedia struct {
	position float64
	duration float64
}

func (m *fakeMedia) CurrentTime() float64 { return m.position }
func (m *fakeMedia) Duration() float64    { return m.duration }

type manualJob struct {
	fn        func()
	interval  time.Duration
	cancelled bool
}

// manualScheduler records jobs and only runs them when tick is called.
type manualScheduler struct {
	jobs []*manualJob
}

func (s *manualScheduler) Every(interval time.Duration, fn func()) CancelFunc {
	job := &manualJob{fn: fn, interval: interval}
	s.jobs = append(s.jobs, job)
	return func() {
		job.cancelled = true
	}
}

func (s *manualScheduler) active() []*manualJob {
	var active []*manualJob
	for _, j := range s.jobs {
		if !j.cancelled {
			active = append(active, j)
		}
	}
	return active
}

func (s *manualScheduler) tick(n int) {
	for range n {
		for _, j := range s.active() {
			j.fn()
		}
	}
}

func float64Ptr(f float64) *float64 {
	return &f
}

type trackerEnv struct {
	media   *fakeMedia
	sched   *manualScheduler
	tracker *Tracker
	played  int
}

func newTrackerEnv(opts Options, duration float64) *trackerEnv {
	env := &trackerEnv{
		media: &fakeMedia{duration: duration},
		sched: &manualScheduler{},
	}
	env.tracker = NewTracker(opts, env.media, env.sched, func() {
		env.played++
	})
	return env
}
