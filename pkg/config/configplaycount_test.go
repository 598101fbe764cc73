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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaycountOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		playcount   Playcount
		wantTimer   *float64
		wantPercent float64
	}{
		{
			name:        "nothing configured",
			wantPercent: 0.1,
		},
		{
			name:        "percent only",
			playcount:   Playcount{PlayTimerPercent: float64Ptr(0.3)},
			wantPercent: 0.3,
		},
		{
			name:        "timer and percent",
			playcount:   Playcount{PlayTimer: float64Ptr(12), PlayTimerPercent: float64Ptr(0.3)},
			wantTimer:   float64Ptr(12),
			wantPercent: 0.3,
		},
		{
			name:        "zero timer is kept",
			playcount:   Playcount{PlayTimer: float64Ptr(0)},
			wantTimer:   float64Ptr(0),
			wantPercent: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inst := &Instance{
				vals: Values{
					Playcount: tt.playcount,
				},
			}

			opts := inst.PlaycountOptions()
			if tt.wantTimer == nil {
				assert.Nil(t, opts.PlayTimer)
			} else {
				require.NotNil(t, opts.PlayTimer)
				assert.InDelta(t, *tt.wantTimer, *opts.PlayTimer, 0)
			}
			assert.InDelta(t, tt.wantPercent, opts.Percent(), 0)
		})
	}
}

func TestPlaycountOptionsAreCopies(t *testing.T) {
	t.Parallel()

	inst := &Instance{
		vals: Values{
			Playcount: Playcount{PlayTimer: float64Ptr(10)},
		},
	}

	opts := inst.PlaycountOptions()
	inst.SetPlayTimer(float64Ptr(99))

	assert.InDelta(t, 10.0, *opts.PlayTimer, 0)
}

func TestValidThreshold(t *testing.T) {
	t.Parallel()

	assert.True(t, validThreshold(0.5))
	assert.False(t, validThreshold(0))
	assert.False(t, validThreshold(-1))
}

func TestKodiDefaults(t *testing.T) {
	t.Parallel()

	inst := &Instance{}
	assert.False(t, inst.KodiEnabled())
	assert.Equal(t, DefaultKodiURL, inst.KodiURL())
	assert.Equal(t, DefaultKodiWebsocketURL, inst.KodiWebsocketURL())

	inst.SetKodiEnabled(true)
	assert.True(t, inst.KodiEnabled())
}

func TestServiceDefaults(t *testing.T) {
	t.Parallel()

	inst := &Instance{
		vals: Values{
			Service: Service{
				APIListen:      "127.0.0.1:9999",
				AllowedOrigins: []string{"https://example.com"},
				APIPort:        intPtr(1234),
			},
		},
	}
	assert.Equal(t, "127.0.0.1:9999", inst.APIListen())
	assert.Equal(t, 1234, inst.APIPort())
	assert.Equal(t, []string{"https://example.com"}, inst.AllowedOrigins())
}
