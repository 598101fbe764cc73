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

// Package sessions keeps one play threshold tracker per media element and
// routes host playback events to it.
package sessions

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/notifications"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/validation"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/playcount"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var ErrUnknownMedia = errors.New("unknown media")

type session struct {
	updatedAt time.Time
	media     *mediaSnapshot
	tracker   *playcount.Tracker
	id        string
	plays     atomic.Int64
}

// Manager owns the trackers for all attached media elements. Trackers
// share configuration and scheduler but no state.
type Manager struct {
	clock         clockwork.Clock
	scheduler     playcount.Scheduler
	notifications chan<- models.Notification
	sessions      map[string]*session
	opts          playcount.Options
	mu            syncutil.Mutex
}

// NewManager creates a session manager. Played and detached notifications
// are sent to ns without blocking.
func NewManager(
	opts playcount.Options,
	scheduler playcount.Scheduler,
	clock clockwork.Clock,
	ns chan<- models.Notification,
) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if scheduler == nil {
		scheduler = playcount.NewClockScheduler(clock)
	}
	return &Manager{
		opts:          opts,
		scheduler:     scheduler,
		clock:         clock,
		notifications: ns,
		sessions:      make(map[string]*session),
	}
}

// HandleEvent applies a playback event to the media element's tracker,
// creating the tracker on first sight of the media ID.
func (m *Manager) HandleEvent(ev *models.MediaEvent) error {
	if err := validation.DefaultValidator.Validate(ev); err != nil {
		return fmt.Errorf("invalid media event: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.Type == models.MediaEventDetach {
		return m.removeLocked(ev.MediaID)
	}

	s := m.sessionLocked(ev.MediaID)
	s.media.update(ev.Position, ev.Duration)
	s.updatedAt = m.clock.Now()

	log.Debug().
		Str("media_id", ev.MediaID).
		Str("type", ev.Type).
		Msg("sessions: handling event")

	switch ev.Type {
	case models.MediaEventPlay:
		s.tracker.OnPlay()
	case models.MediaEventPause, models.MediaEventEnded:
		s.tracker.OnPause()
	case models.MediaEventSeeked, models.MediaEventTimeUpdate:
		// snapshot only; a seek back to zero is seen by the next play
	}

	return nil
}

// Status returns a snapshot of one media element's session.
func (m *Manager) Status(id string) (models.SessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return models.SessionResponse{}, ErrUnknownMedia
	}
	return s.response(), nil
}

// List returns snapshots of all sessions ordered by media ID.
func (m *Manager) List() []models.SessionResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.SessionResponse, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.response())
	}
	slices.SortFunc(out, func(a, b models.SessionResponse) int {
		return strings.Compare(a.MediaID, b.MediaID)
	})
	return out
}

// Remove detaches and forgets a media element.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(id)
}

// Close detaches every media element.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.tracker.Detach()
		delete(m.sessions, id)
	}
	log.Debug().Msg("sessions: all trackers detached")
}

func (m *Manager) removeLocked(id string) error {
	s, ok := m.sessions[id]
	if !ok {
		return ErrUnknownMedia
	}
	s.tracker.Detach()
	delete(m.sessions, id)

	log.Info().Str("media_id", id).Msg("sessions: media detached")
	notifications.MediaDetached(m.notifications, models.DetachedParams{MediaID: id})
	return nil
}

func (m *Manager) sessionLocked(id string) *session {
	if s, ok := m.sessions[id]; ok {
		return s
	}

	s := &session{
		id:    id,
		media: &mediaSnapshot{},
	}
	s.tracker = playcount.NewTracker(m.opts, s.media, m.scheduler, func() {
		m.played(s)
	})
	m.sessions[id] = s

	log.Info().Str("media_id", id).Msg("sessions: tracking new media")
	return s
}

// played runs on the scheduler's goroutine and must not take m.mu.
func (m *Manager) played(s *session) {
	plays := s.plays.Add(1)
	st := s.tracker.Status()

	log.Info().
		Str("media_id", s.id).
		Int64("plays", plays).
		Int("epoch", st.Epoch).
		Msg("sessions: media played")

	notifications.MediaPlayed(m.notifications, models.PlayedParams{
		MediaID:        s.id,
		Epoch:          st.Epoch,
		NeededPlaytime: st.NeededPlaytime,
		Playtime:       st.Playtime,
		PlayedAt:       m.clock.Now(),
	})
}

func (s *session) response() models.SessionResponse {
	st := s.tracker.Status()
	resp := models.SessionResponse{
		MediaID:   s.id,
		State:     st.State.String(),
		Position:  s.media.CurrentTime(),
		Duration:  s.media.Duration(),
		Playtime:  st.Playtime,
		Played:    st.Played,
		Epoch:     st.Epoch,
		Plays:     int(s.plays.Load()),
		UpdatedAt: s.updatedAt,
	}
	if st.NeededKnown {
		needed := st.NeededPlaytime
		resp.NeededPlaytime = &needed
	}
	return resp
}
