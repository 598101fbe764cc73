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
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestConfig(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg, err := NewTestConfig(fs, "/config")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIPort, cfg.APIPort())

	exists, err := afero.Exists(fs, filepath.Join("/config", config.CfgFile))
	require.NoError(t, err)
	assert.True(t, exists, "config file should exist")
}

func TestNewTestConfigWithPort(t *testing.T) {
	t.Parallel()

	cfg, err := NewTestConfigWithPort(afero.NewMemMapFs(), "/config", 9123)
	require.NoError(t, err)
	assert.Equal(t, 9123, cfg.APIPort())
	assert.Equal(t, ":9123", cfg.APIListen())
}
