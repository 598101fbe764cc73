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

package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/platforms/shared/kodi"
)

// MockKodiServer provides a mock Kodi JSON-RPC server for integration testing
type MockKodiServer struct {
	*httptest.Server
	item    kodi.Item
	props   kodi.PlayerProperties
	players []kodi.Player
	calls   []kodi.APIMethod
	mu      syncutil.Mutex
}

// NewMockKodiServer creates a new mock Kodi server for testing
func NewMockKodiServer(t *testing.T) *MockKodiServer {
	mock := &MockKodiServer{
		players: make([]kodi.Player, 0),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/jsonrpc", mock.handleJSONRPC)
	mock.Server = httptest.NewServer(mux)
	t.Cleanup(mock.Close)

	return mock
}

// GetURLForConfig returns the mock server's URL formatted for Kodi client configuration
func (m *MockKodiServer) GetURLForConfig() string {
	return m.URL + "/jsonrpc"
}

// WithPlayer configures a single active video player playing item.
func (m *MockKodiServer) WithPlayer(item kodi.Item, props kodi.PlayerProperties) *MockKodiServer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = []kodi.Player{{ID: 1, Type: "video"}}
	m.item = item
	m.props = props
	return m
}

// Calls returns the methods received so far.
func (m *MockKodiServer) Calls() []kodi.APIMethod {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]kodi.APIMethod, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockKodiServer) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload kodi.APIPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.calls = append(m.calls, payload.Method)
	var result any
	var apiErr *kodi.APIError
	switch payload.Method {
	case kodi.APIMethodPlayerGetActivePlayers:
		result = m.players
	case kodi.APIMethodPlayerGetProperties:
		result = m.props
	case kodi.APIMethodPlayerGetItem:
		result = kodi.PlayerGetItemResponse{Item: m.item}
	case kodi.APIMethodJSONRPCPing:
		result = "pong"
	default:
		apiErr = &kodi.APIError{Code: -32601, Message: "Method not found."}
	}
	m.mu.Unlock()

	response := kodi.APIResponse{
		ID:      payload.ID,
		JSONRPC: "2.0",
		Error:   apiErr,
	}
	if apiErr == nil {
		response.Result, _ = json.Marshal(result)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}
