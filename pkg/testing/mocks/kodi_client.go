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
	"context"
	"encoding/json"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/platforms/shared/kodi"
	"github.com/stretchr/testify/mock"
)

// MockKodiClient is a mock implementation of the KodiClient interface
// for use in tests. It provides all the standard testify/mock functionality.
type MockKodiClient struct {
	mock.Mock
}

// Ensure MockKodiClient implements KodiClient at compile time
var _ kodi.KodiClient = (*MockKodiClient)(nil)

// GetActivePlayers mocks retrieving all active players in Kodi
func (m *MockKodiClient) GetActivePlayers(ctx context.Context) ([]kodi.Player, error) {
	args := m.Called(ctx)
	players, _ := args.Get(0).([]kodi.Player)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return players, args.Error(1)
}

// GetPlayerProperties mocks reading a player's position and total time
func (m *MockKodiClient) GetPlayerProperties(ctx context.Context, playerID int) (kodi.PlayerProperties, error) {
	args := m.Called(ctx, playerID)
	props, _ := args.Get(0).(kodi.PlayerProperties)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return props, args.Error(1)
}

// GetPlayerItem mocks reading a player's current item
func (m *MockKodiClient) GetPlayerItem(ctx context.Context, playerID int) (kodi.Item, error) {
	args := m.Called(ctx, playerID)
	item, _ := args.Get(0).(kodi.Item)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return item, args.Error(1)
}

// GetURL mocks returning the current Kodi API URL
func (m *MockKodiClient) GetURL() string {
	args := m.Called()
	return args.String(0)
}

// SetURL mocks setting the Kodi API URL
func (m *MockKodiClient) SetURL(url string) {
	m.Called(url)
}

// APIRequest mocks making a raw JSON-RPC request to Kodi API
func (m *MockKodiClient) APIRequest(ctx context.Context, method kodi.APIMethod, params any) (json.RawMessage, error) {
	args := m.Called(ctx, method, params)
	raw, _ := args.Get(0).(json.RawMessage)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return raw, args.Error(1)
}

// SetupBasicMock configures the mock with common expectations
// for standard test scenarios
func (m *MockKodiClient) SetupBasicMock() {
	m.On("GetActivePlayers", mock.Anything).Return([]kodi.Player{}, nil).Maybe()
	m.On("GetURL").Return("http://localhost:8080/jsonrpc").Maybe()
	m.On("SetURL", mock.AnythingOfType("string")).Return().Maybe()
}

// NewMockKodiClient creates a new mock Kodi client with basic setup
func NewMockKodiClient() *MockKodiClient {
	m := &MockKodiClient{}
	m.SetupBasicMock()
	return m
}
