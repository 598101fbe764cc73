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
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func TestNewConfigWritesDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg, err := NewConfigWithFs(fs, "/etc/playcount", BaseDefaults)
	require.NoError(t, err)

	path := filepath.Join("/etc/playcount", CfgFile)
	assert.Equal(t, path, cfg.Path())

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_schema = 1")

	_, ok := cfg.PlayTimer()
	assert.False(t, ok)
	assert.InDelta(t, 0.1, cfg.PlayTimerPercent(), 0)
	assert.Equal(t, DefaultAPIPort, cfg.APIPort())
	assert.False(t, cfg.KodiEnabled())
}

func TestNewConfigLoadsExistingFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := filepath.Join("/cfg", CfgFile)
	require.NoError(t, afero.WriteFile(fs, path, []byte(`
config_schema = 1
debug_logging = true

[playcount]
play_timer = 30.0
play_timer_percent = 0.5

[service]
api_port = 8123

[kodi]
enabled = true
url = "http://kodi.local:8080/jsonrpc"
`), 0o600))

	cfg, err := NewConfigWithFs(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)

	timer, ok := cfg.PlayTimer()
	require.True(t, ok)
	assert.InDelta(t, 30.0, timer, 0)
	assert.InDelta(t, 0.5, cfg.PlayTimerPercent(), 0)
	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, 8123, cfg.APIPort())
	assert.Equal(t, ":8123", cfg.APIListen())
	assert.True(t, cfg.KodiEnabled())
	assert.Equal(t, "http://kodi.local:8080/jsonrpc", cfg.KodiURL())
	assert.Equal(t, DefaultKodiWebsocketURL, cfg.KodiWebsocketURL())
}

func TestLoadSchemaMismatch(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := filepath.Join("/cfg", CfgFile)
	require.NoError(t, afero.WriteFile(fs, path, []byte("config_schema = 7\n"), 0o600))

	_, err := NewConfigWithFs(fs, "/cfg", BaseDefaults)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestLoadInvalidToml(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := filepath.Join("/cfg", CfgFile)
	require.NoError(t, afero.WriteFile(fs, path, []byte("config_schema = \n"), 0o600))

	_, err := NewConfigWithFs(fs, "/cfg", BaseDefaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestLoadRejectsInvalidServiceValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "port out of range",
			body: "config_schema = 1\n[service]\napi_port = 70000\n",
		},
		{
			name: "bad kodi url",
			body: "config_schema = 1\n[kodi]\nurl = \"not a url\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			path := filepath.Join("/cfg", CfgFile)
			require.NoError(t, afero.WriteFile(fs, path, []byte(tt.body), 0o600))

			_, err := NewConfigWithFs(fs, "/cfg", BaseDefaults)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoadKeepsUnusableThresholds(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := filepath.Join("/cfg", CfgFile)
	require.NoError(t, afero.WriteFile(fs, path, []byte(`
config_schema = 1

[playcount]
play_timer = 0.0
`), 0o600))

	cfg, err := NewConfigWithFs(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)

	timer, ok := cfg.PlayTimer()
	assert.True(t, ok, "a present zero is still a configured timer")
	assert.InDelta(t, 0.0, timer, 0)
}

func TestSaveRoundTripsSettings(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg, err := NewConfigWithFs(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)

	cfg.SetPlayTimer(float64Ptr(45))
	cfg.SetPlayTimerPercent(float64Ptr(0.25))
	cfg.SetAPIPort(9000)
	cfg.SetKodiEnabled(true)
	cfg.SetDebugLogging(true)
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfigWithFs(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)

	timer, ok := reloaded.PlayTimer()
	require.True(t, ok)
	assert.InDelta(t, 45.0, timer, 0)
	assert.InDelta(t, 0.25, reloaded.PlayTimerPercent(), 0)
	assert.Equal(t, 9000, reloaded.APIPort())
	assert.True(t, reloaded.KodiEnabled())
	assert.True(t, reloaded.DebugLogging())
}

func TestLoadWithoutPath(t *testing.T) {
	t.Parallel()

	inst := &Instance{fs: afero.NewMemMapFs()}
	require.ErrorIs(t, inst.Load(), ErrNoConfigPath)
	require.ErrorIs(t, inst.Save(), ErrNoConfigPath)
}

func TestConfigEnvOverridesPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	t.Setenv(CfgEnv, "/custom/place.toml")

	cfg, err := NewConfigWithFs(fs, "/ignored", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, "/custom/place.toml", cfg.Path())

	exists, err := afero.Exists(fs, "/custom/place.toml")
	require.NoError(t, err)
	assert.True(t, exists)
}
