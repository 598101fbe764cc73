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

// Package service wires the session manager, API server and host adapters
// into a running playcount service.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/api"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/config"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/platforms/shared/kodi"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/service/broker"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/service/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrNoConfig = errors.New("no config instance")

const (
	notificationQueueSize = 100
	subscriberBufferSize  = 100
)

// Start runs the service in the background. The returned stop function
// shuts everything down and reports the first component error, if any;
// done closes once shutdown has finished, including after a component
// failure.
func Start(
	parent context.Context,
	cfg *config.Instance,
) (stop func() error, done <-chan struct{}, err error) {
	if cfg == nil {
		return nil, nil, ErrNoConfig
	}

	log.Info().Msgf("version: %s", config.AppVersion)

	ctx, cancel := context.WithCancel(parent)

	ns := make(chan models.Notification, notificationQueueSize)
	notifBroker := broker.NewBroker(ctx, ns)
	notifBroker.Start()

	opts := cfg.PlaycountOptions()
	log.Info().
		Interface("play_timer", opts.PlayTimer).
		Float64("play_timer_percent", opts.Percent()).
		Msg("starting session manager")
	manager := sessions.NewManager(opts, nil, clockwork.NewRealClock(), ns)

	g, gctx := errgroup.WithContext(ctx)

	log.Info().Msg("starting API service")
	apiNotifications, _ := notifBroker.Subscribe(subscriberBufferSize)
	g.Go(func() error {
		return api.Start(gctx, cfg, manager, apiNotifications)
	})

	logNotifications, _ := notifBroker.Subscribe(subscriberBufferSize)
	go logPlayed(logNotifications)

	if cfg.KodiEnabled() {
		log.Info().
			Str("url", cfg.KodiURL()).
			Str("websocket_url", cfg.KodiWebsocketURL()).
			Msg("starting kodi listener")
		listener := kodi.NewListener(cfg, kodi.NewClient(cfg), manager)
		g.Go(func() error {
			return listener.Run(gctx)
		})
	}

	var runErr error
	doneCh := make(chan struct{})
	go func() {
		runErr = g.Wait()
		if runErr != nil {
			log.Error().Err(runErr).Msg("service component failed")
		}
		log.Info().Msg("service context cancelled, running cleanup")

		manager.Close()
		cancel()
		<-notifBroker.Done()

		log.Info().Msg("service cleanup completed")
		close(doneCh)
	}()

	stop = func() error {
		cancel()
		<-doneCh
		if runErr != nil {
			return fmt.Errorf("service stopped with error: %w", runErr)
		}
		return nil
	}
	return stop, doneCh, nil
}

// logPlayed records every threshold crossing in the service log.
func logPlayed(notifications <-chan models.Notification) {
	for notif := range notifications {
		if notif.Method != models.NotificationPlayed {
			continue
		}
		log.Info().RawJSON("params", notif.Params).Msg("media played")
	}
}
