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

// Package helpers provides testing utilities shared across packages.
//
// This package includes a WebSocket test server for exercising API clients,
// an in-memory config constructor, and a mock Kodi JSON-RPC server.
//
// Example usage:
//
//	func TestWaitForPlayed(t *testing.T) {
//		server := helpers.NewWebSocketTestServer(t, nil)
//		defer server.Close()
//
//		conn, err := server.CreateWebSocketClient()
//		require.NoError(t, err)
//		defer conn.Close()
//	}
package helpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/helpers/syncutil"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
)

const APIPath = "/api"

// WebSocketTestServer provides utilities for testing WebSocket connections
type WebSocketTestServer struct {
	Server   *httptest.Server
	Melody   *melody.Melody
	t        *testing.T
	Messages [][]byte
	mu       syncutil.RWMutex
}

// NewWebSocketTestServer serves a melody WebSocket on APIPath. handler may
// be nil for servers that only push messages.
func NewWebSocketTestServer(t *testing.T, handler func(*melody.Session, []byte)) *WebSocketTestServer {
	m := melody.New()

	wsts := &WebSocketTestServer{
		Melody: m,
		t:      t,
	}

	m.HandleMessage(func(session *melody.Session, msg []byte) {
		wsts.recordMessage(msg)
		if handler != nil {
			handler(session, msg)
		}
	})

	mux := http.NewServeMux()
	mux.HandleFunc(APIPath, func(w http.ResponseWriter, r *http.Request) {
		err := m.HandleRequest(w, r)
		if err != nil {
			t.Logf("websocket test server: %v", err)
		}
	})

	wsts.Server = httptest.NewServer(mux)

	// Brief wait to ensure server is fully ready for WebSocket connections
	time.Sleep(5 * time.Millisecond)

	return wsts
}

func (wsts *WebSocketTestServer) recordMessage(data []byte) {
	wsts.mu.Lock()
	defer wsts.mu.Unlock()

	msg := make([]byte, len(data))
	copy(msg, data)
	wsts.Messages = append(wsts.Messages, msg)
}

// Close shuts down the test server
func (wsts *WebSocketTestServer) Close() {
	_ = wsts.Melody.Close()
	wsts.Server.Close()
}

// GetMessages returns all received messages (thread-safe)
func (wsts *WebSocketTestServer) GetMessages() [][]byte {
	wsts.mu.RLock()
	defer wsts.mu.RUnlock()

	msgs := make([][]byte, len(wsts.Messages))
	copy(msgs, wsts.Messages)
	return msgs
}

// WaitForSessions blocks until n clients are connected or the timeout
// passes.
func (wsts *WebSocketTestServer) WaitForSessions(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if wsts.Melody.Len() >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// CreateWebSocketClient creates a WebSocket client connected to the test server
func (wsts *WebSocketTestServer) CreateWebSocketClient() (*websocket.Conn, error) {
	u, err := url.Parse(wsts.Server.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server URL: %w", err)
	}

	u.Scheme = "ws"
	u.Path = APIPath

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dial WebSocket: %w", err)
	}

	return conn, nil
}
