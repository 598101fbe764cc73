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

package sessions

import "github.com/ZaparooProject/zaparoo-playcount/pkg/helpers/syncutil"

// mediaSnapshot is the last known position and duration of a media element
// as reported by the host. A zero duration means it isn't known yet.
type mediaSnapshot struct {
	position float64
	duration float64
	mu       syncutil.RWMutex
}

func (m *mediaSnapshot) CurrentTime() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

func (m *mediaSnapshot) Duration() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.duration
}

func (m *mediaSnapshot) update(position, duration *float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if position != nil {
		m.position = *position
	}
	if duration != nil {
		m.duration = *duration
	}
}
