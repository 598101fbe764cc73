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
)

func TestAPIListen(t *testing.T) {
	t.Parallel()

	port := 9000

	tests := []struct {
		name    string
		service Service
		want    string
	}{
		{name: "default port on all interfaces", want: ":7498"},
		{name: "custom port", service: Service{APIPort: &port}, want: ":9000"},
		{name: "explicit listen wins", service: Service{APIPort: &port, APIListen: "127.0.0.1:8000"}, want: "127.0.0.1:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inst := &Instance{vals: Values{Service: tt.service}}
			assert.Equal(t, tt.want, inst.APIListen())
		})
	}
}

func TestRateLimitDefaults(t *testing.T) {
	t.Parallel()

	inst := &Instance{}
	assert.InDelta(t, DefaultRateLimit, inst.RateLimit(), 0)
	assert.Equal(t, DefaultRateBurst, inst.RateBurst())
	assert.Empty(t, inst.AllowedIPs())

	limit := 0.0
	burst := 5
	inst = &Instance{vals: Values{Service: Service{
		RateLimit:  &limit,
		RateBurst:  &burst,
		AllowedIPs: []string{"10.0.0.0/8"},
	}}}
	assert.InDelta(t, 0.0, inst.RateLimit(), 0)
	assert.Equal(t, 5, inst.RateBurst())
	assert.Equal(t, []string{"10.0.0.0/8"}, inst.AllowedIPs())
}
