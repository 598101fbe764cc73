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

package kodi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/config"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const DefaultReconnectDelay = 5 * time.Second

var ErrNoMediaID = errors.New("item has no usable media id")

// EventSink receives playback events translated from Kodi notifications.
type EventSink interface {
	HandleEvent(ev *models.MediaEvent) error
}

// Listener follows Kodi's WebSocket notifications and forwards player
// activity to an EventSink.
type Listener struct {
	client         KodiClient
	sink           EventSink
	clock          clockwork.Clock
	dialer         *websocket.Dialer
	wsURL          string
	reconnectDelay time.Duration
}

type ListenerOption func(*Listener)

func WithClock(clock clockwork.Clock) ListenerOption {
	return func(l *Listener) {
		l.clock = clock
	}
}

func WithReconnectDelay(d time.Duration) ListenerOption {
	return func(l *Listener) {
		l.reconnectDelay = d
	}
}

func WithWebsocketURL(url string) ListenerOption {
	return func(l *Listener) {
		l.wsURL = url
	}
}

func NewListener(cfg *config.Instance, client KodiClient, sink EventSink, opts ...ListenerOption) *Listener {
	wsURL := config.DefaultKodiWebsocketURL
	if cfg != nil {
		wsURL = cfg.KodiWebsocketURL()
	}

	l := &Listener{
		client:         client,
		sink:           sink,
		clock:          clockwork.NewRealClock(),
		dialer:         websocket.DefaultDialer,
		wsURL:          wsURL,
		reconnectDelay: DefaultReconnectDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run connects to Kodi and processes notifications until ctx is done,
// reconnecting after every dropped or failed connection.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			log.Debug().Msg("kodi: listener stopped")
			return nil
		}
		log.Warn().Err(err).
			Str("url", l.wsURL).
			Dur("retry_in", l.reconnectDelay).
			Msg("kodi: connection lost")

		select {
		case <-ctx.Done():
			log.Debug().Msg("kodi: listener stopped")
			return nil
		case <-l.clock.After(l.reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, resp, err := l.dialer.DialContext(ctx, l.wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to dial kodi websocket: %w", err)
	}

	log.Info().Str("url", l.wsURL).Msg("kodi: connected")

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer func() {
		stop()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read kodi notification: %w", err)
		}
		l.handleMessage(ctx, data)
	}
}

func (l *Listener) handleMessage(ctx context.Context, data []byte) {
	var notif Notification
	if err := json.Unmarshal(data, &notif); err != nil {
		log.Debug().Err(err).Msg("kodi: ignoring undecodable message")
		return
	}

	ev, ok := l.translate(ctx, &notif)
	if !ok {
		return
	}

	if err := l.sink.HandleEvent(ev); err != nil {
		log.Warn().Err(err).
			Str("media_id", ev.MediaID).
			Str("type", ev.Type).
			Msg("kodi: event rejected")
	}
}

// translate maps a Kodi notification onto a media event, filling in the
// position and duration from the player where Kodi doesn't send them.
func (l *Listener) translate(ctx context.Context, notif *Notification) (*models.MediaEvent, bool) {
	var evType string
	switch notif.Method {
	case NotificationPlayerOnPlay, NotificationPlayerOnResume:
		evType = models.MediaEventPlay
	case NotificationPlayerOnPause:
		evType = models.MediaEventPause
	case NotificationPlayerOnSeek:
		evType = models.MediaEventSeeked
	case NotificationPlayerOnStop:
		evType = models.MediaEventPause
		if notif.Params.Data.End {
			evType = models.MediaEventEnded
		}
	default:
		return nil, false
	}

	data := notif.Params.Data
	item := data.Item
	playerID := data.Player.PlayerID

	if MediaID(item) == "" && notif.Method != NotificationPlayerOnStop {
		full, err := l.client.GetPlayerItem(ctx, playerID)
		if err != nil {
			log.Warn().Err(err).Int("player_id", playerID).Msg("kodi: failed to get player item")
		} else {
			item = full
		}
	}

	id := MediaID(item)
	if id == "" {
		log.Debug().Str("method", notif.Method).Err(ErrNoMediaID).Msg("kodi: skipping notification")
		return nil, false
	}

	ev := &models.MediaEvent{
		MediaID: id,
		Type:    evType,
	}

	// the player is gone after a stop
	if notif.Method == NotificationPlayerOnStop {
		return ev, true
	}

	props, err := l.client.GetPlayerProperties(ctx, playerID)
	if err != nil {
		log.Warn().Err(err).Int("player_id", playerID).Msg("kodi: failed to get player properties")
	} else {
		position := props.Time.InSeconds()
		duration := props.TotalTime.InSeconds()
		ev.Position = &position
		if duration > 0 {
			ev.Duration = &duration
		}
	}

	if data.Player.Time != nil {
		position := data.Player.Time.InSeconds()
		ev.Position = &position
	}

	return ev, true
}

// MediaID returns the session key for a Kodi item: "<type>-<id>" for
// library items, otherwise the file path.
func MediaID(item Item) string {
	if item.ID > 0 && item.Type != "" && item.Type != "unknown" {
		return item.Type + "-" + strconv.Itoa(item.ID)
	}
	return item.File
}
