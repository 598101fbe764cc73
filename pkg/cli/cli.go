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

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/client"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/config"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/helpers"
	"github.com/rs/zerolog/log"
)

var ErrMissingValue = errors.New("flag requires a value")

type Flags struct {
	ConfigDir *string
	API       *string
	Status    *string
	Wait      *time.Duration
	Version   *bool
	Daemon    *bool
	List      *bool
	fs        *flag.FlagSet
}

// SetupFlags defines all CLI flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs: fs,
		ConfigDir: fs.String(
			"config",
			"",
			"directory to read playcount.toml from",
		),
		API: fs.String(
			"api",
			"",
			"send method and params to API and print response",
		),
		Status: fs.String(
			"status",
			"",
			"print playback status of a media ID",
		),
		Wait: fs.Duration(
			"wait",
			0,
			"wait for the next media.played notification (0 waits forever)",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Daemon: fs.Bool(
			"daemon",
			false,
			"run service in foreground and log to stderr",
		),
		List: fs.Bool(
			"list",
			false,
			"print status of all tracked media",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and actions any immediate flags that don't require
// environment setup. Returns true if the program should exit.
func (f *Flags) Pre(args []string, out io.Writer) (bool, error) {
	if err := f.fs.Parse(args); err != nil {
		return true, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "Zaparoo Playcount v%s (%s)\n", config.AppVersion, runtime.GOOS)
		return true, nil
	}

	return false, nil
}

// Dirs returns the directories to use, honouring the config flag.
func (f *Flags) Dirs() helpers.Dirs {
	dirs := helpers.DefaultDirs()
	if *f.ConfigDir != "" {
		dirs.ConfigDir = *f.ConfigDir
	}
	return dirs
}

// Post actions all remaining client flags against a running service.
// Returns true if a flag was handled and the program should exit.
func (f *Flags) Post(ctx context.Context, api client.APIClient, out io.Writer) (bool, error) {
	switch {
	case f.isFlagPassed("api"):
		if *f.API == "" {
			return true, fmt.Errorf("api: %w", ErrMissingValue)
		}

		ps := strings.SplitN(*f.API, ":", 2)
		method := ps[0]
		params := ""
		if len(ps) > 1 {
			params = ps[1]
		}

		return true, callAPI(ctx, api, out, method, params)
	case f.isFlagPassed("status"):
		if *f.Status == "" {
			return true, fmt.Errorf("status: %w", ErrMissingValue)
		}
		data, err := json.Marshal(&models.MediaIDParams{MediaID: *f.Status})
		if err != nil {
			return true, fmt.Errorf("error encoding params: %w", err)
		}
		return true, callAPI(ctx, api, out, models.MethodMediaStatus, string(data))
	case *f.List:
		return true, callAPI(ctx, api, out, models.MethodMedia, "")
	case f.isFlagPassed("wait"):
		timeout := *f.Wait
		if timeout == 0 {
			timeout = -1
		}
		resp, err := api.WaitNotification(ctx, timeout, models.NotificationPlayed)
		if err != nil {
			log.Error().Err(err).Msg("error waiting for notification")
			return true, fmt.Errorf("error waiting for notification: %w", err)
		}
		_, _ = fmt.Fprintln(out, resp)
		return true, nil
	}

	return false, nil
}

func callAPI(ctx context.Context, api client.APIClient, out io.Writer, method, params string) error {
	resp, err := api.Call(ctx, method, params)
	if err != nil {
		log.Error().Err(err).Msg("error calling API")
		return fmt.Errorf("error calling API: %w", err)
	}
	_, _ = fmt.Fprintln(out, resp)
	return nil
}

// Setup creates the directories, initializes logging and loads the user
// config.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	dirs helpers.Dirs,
	defaultConfig config.Values,
	writers []io.Writer,
) (*config.Instance, error) {
	if err := helpers.EnsureDirectories(dirs); err != nil {
		return nil, fmt.Errorf("error creating directories: %w", err)
	}

	if err := helpers.InitLogging(dirs.LogDir, writers); err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(dirs.ConfigDir, defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	helpers.SetDebugLogging(cfg.DebugLogging())

	return cfg, nil
}
