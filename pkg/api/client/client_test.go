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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/config"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/testing/helpers"
	"github.com/olahol/melody"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfigWithPort creates a minimal config with the given port for testing.
func testConfigWithPort(t *testing.T, port int) *config.Instance {
	t.Helper()
	cfg, err := helpers.NewTestConfigWithPort(afero.NewMemMapFs(), "/config", port)
	require.NoError(t, err)
	return cfg
}

// parseServerPort extracts the port from an httptest.Server URL.
func parseServerPort(t *testing.T, server *httptest.Server) int {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return port
}

// unusedPort returns a port that is guaranteed to not have anything listening.
func unusedPort(t *testing.T) int {
	t.Helper()
	var lc net.ListenConfig
	listener, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok)
	require.NoError(t, listener.Close())
	return tcpAddr.Port
}

func respond(session *melody.Session, msg []byte, build func(id any) map[string]any) {
	var request map[string]any
	if err := json.Unmarshal(msg, &request); err != nil {
		return
	}
	data, _ := json.Marshal(build(request["id"]))
	_ = session.Write(data)
}

func TestLocalClient_ValidRequest(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, func(session *melody.Session, msg []byte) {
		respond(session, msg, func(id any) map[string]any {
			return map[string]any{
				"jsonrpc": "2.0",
				"result":  map[string]any{"sessions": []any{}},
				"id":      id,
			}
		})
	})
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	result, err := LocalClient(context.Background(), cfg, "media", `{"mediaId":"a"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessions":[]}`, result)

	msgs := server.GetMessages()
	require.Len(t, msgs, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(msgs[0], &sent))
	assert.Equal(t, "media", sent["method"])
	assert.Equal(t, map[string]any{"mediaId": "a"}, sent["params"])
}

func TestLocalClient_EmptyParams(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, func(session *melody.Session, msg []byte) {
		respond(session, msg, func(id any) map[string]any {
			return map[string]any{"jsonrpc": "2.0", "result": "success", "id": id}
		})
	})
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	result, err := LocalClient(context.Background(), cfg, "version", "")
	require.NoError(t, err)
	assert.Equal(t, `"success"`, result)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(server.GetMessages()[0], &sent))
	_, hasParams := sent["params"]
	assert.False(t, hasParams)
}

func TestLocalClient_InvalidParams(t *testing.T) {
	t.Parallel()

	cfg := testConfigWithPort(t, unusedPort(t))

	_, err := LocalClient(context.Background(), cfg, "media", "not valid json")
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestLocalClient_ErrorResponse(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, func(session *melody.Session, msg []byte) {
		respond(session, msg, func(id any) map[string]any {
			return map[string]any{
				"jsonrpc": "2.0",
				"error":   map[string]any{"code": -32601, "message": "Method not found"},
				"id":      id,
			}
		})
	})
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	_, err := LocalClient(context.Background(), cfg, "launch", "")
	require.ErrorIs(t, err, ErrResponse)
	assert.Contains(t, err.Error(), "Method not found")
}

func TestLocalClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, nil)
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := LocalClient(ctx, cfg, "media", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestCancelled) || errors.Is(err, ErrRequestTimeout))
}

func TestLocalClient_IgnoresMismatchedIDs(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, func(session *melody.Session, msg []byte) {
		respond(session, msg, func(_ any) map[string]any {
			return map[string]any{
				"jsonrpc": "2.0",
				"result":  "wrong",
				"id":      "6f1c1a6e-0000-4000-8000-000000000000",
			}
		})
		respond(session, msg, func(id any) map[string]any {
			return map[string]any{"jsonrpc": "2.0", "result": "correct", "id": id}
		})
	})
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	result, err := LocalClient(context.Background(), cfg, "media", "")
	require.NoError(t, err)
	assert.Equal(t, `"correct"`, result)
}

func TestLocalClient_IgnoresInvalidJSONRPCVersion(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, func(session *melody.Session, msg []byte) {
		respond(session, msg, func(id any) map[string]any {
			return map[string]any{"jsonrpc": "1.0", "result": "invalid", "id": id}
		})
		respond(session, msg, func(id any) map[string]any {
			return map[string]any{"jsonrpc": "2.0", "result": "valid", "id": id}
		})
	})
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	result, err := LocalClient(context.Background(), cfg, "media", "")
	require.NoError(t, err)
	assert.Equal(t, `"valid"`, result)
}

func TestLocalClient_ConnectionFailure(t *testing.T) {
	t.Parallel()

	cfg := testConfigWithPort(t, unusedPort(t))

	_, err := LocalClient(context.Background(), cfg, "media", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to api")
}

func TestWaitNotification_ReceivesNotification(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, nil)
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	go func() {
		if !server.WaitForSessions(1, time.Second) {
			return
		}
		// a request object with the same method must be skipped
		_ = server.Melody.Broadcast([]byte(
			`{"jsonrpc":"2.0","id":"6f1c1a6e-0000-4000-8000-000000000000","method":"media.played","params":{}}`))
		_ = server.Melody.Broadcast([]byte(
			`{"jsonrpc":"2.0","method":"media.detached","params":{"mediaId":"b"}}`))
		_ = server.Melody.Broadcast([]byte(
			`{"jsonrpc":"2.0","method":"media.played","params":{"mediaId":"a","epoch":1}}`))
	}()

	result, err := WaitNotification(context.Background(), 2*time.Second, cfg, "media.played")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mediaId":"a","epoch":1}`, result)
}

func TestWaitNotification_Timeout(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, nil)
	defer server.Close()

	cfg := testConfigWithPort(t, parseServerPort(t, server.Server))

	_, err := WaitNotification(context.Background(), 50*time.Millisecond, cfg, "media.played")
	require.ErrorIs(t, err, ErrRequestTimeout)
}

func TestLocalAPIClient_WaitNotificationWrapsErrors(t *testing.T) {
	t.Parallel()

	cfg := testConfigWithPort(t, unusedPort(t))
	c := NewLocalAPIClient(cfg)

	_, err := c.WaitNotification(context.Background(), 50*time.Millisecond, "media.played")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait notification failed")

	_, err = c.Call(context.Background(), "media", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api call failed")
}

func TestLocalAPIClient_Call(t *testing.T) {
	t.Parallel()

	server := helpers.NewWebSocketTestServer(t, func(session *melody.Session, msg []byte) {
		respond(session, msg, func(id any) map[string]any {
			return map[string]any{
				"jsonrpc": "2.0",
				"result":  map[string]any{"version": "DEVELOPMENT"},
				"id":      id,
			}
		})
	})
	defer server.Close()

	var api APIClient = NewLocalAPIClient(testConfigWithPort(t, parseServerPort(t, server.Server)))

	result, err := api.Call(context.Background(), "version", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"DEVELOPMENT"}`, result)
}
