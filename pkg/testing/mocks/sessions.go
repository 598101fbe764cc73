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

package mocks

import (
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models/requests"
	"github.com/stretchr/testify/mock"
)

// MockSessions is a testify mock of the session manager as seen by the
// API handlers.
type MockSessions struct {
	mock.Mock
}

var _ requests.Sessions = (*MockSessions)(nil)

func NewMockSessions() *MockSessions {
	return &MockSessions{}
}

func (m *MockSessions) HandleEvent(ev *models.MediaEvent) error {
	args := m.Called(ev)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return args.Error(0)
}

func (m *MockSessions) Status(id string) (models.SessionResponse, error) {
	args := m.Called(id)
	resp, _ := args.Get(0).(models.SessionResponse)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return resp, args.Error(1)
}

func (m *MockSessions) List() []models.SessionResponse {
	args := m.Called()
	resp, _ := args.Get(0).([]models.SessionResponse)
	return resp
}

func (m *MockSessions) Remove(id string) error {
	args := m.Called(id)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return args.Error(0)
}
