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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/methods"
	apimiddleware "github.com/ZaparooProject/zaparoo-playcount/pkg/api/middleware"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

var (
	JSONRPCErrorParseError = models.ErrorObject{
		Code:    -32700,
		Message: "Parse error",
	}
	JSONRPCErrorInvalidRequest = models.ErrorObject{
		Code:    -32600,
		Message: "Invalid Request",
	}
	JSONRPCErrorMethodNotFound = models.ErrorObject{
		Code:    -32601,
		Message: "Method not found",
	}
	JSONRPCErrorInvalidParams = models.ErrorObject{
		Code:    -32602,
		Message: "Invalid params",
	}
	JSONRPCErrorServerError = models.ErrorObject{
		Code:    -32000,
		Message: "Server error",
	}
)

var (
	ErrUnknownMethod = errors.New("unknown method")
	ErrMissingID     = errors.New("missing request ID")
)

const shutdownTimeout = 5 * time.Second

var methodMap = map[string]func(requests.RequestEnv) (any, error){
	models.MethodMedia:       methods.HandleMedia,
	models.MethodMediaStatus: methods.HandleMediaStatus,
	models.MethodMediaEvent:  methods.HandleMediaEvent,
	models.MethodMediaDetach: methods.HandleMediaDetach,
	models.MethodVersion:     methods.HandleVersion,
}

// Server exposes the session manager over HTTP and pushes played
// notifications to connected WebSocket clients.
type Server struct {
	sessions requests.Sessions
	melody   *melody.Melody
	router   chi.Router
	limiter  *apimiddleware.IPRateLimiter
}

func NewServer(cfg *config.Instance, sessions requests.Sessions) *Server {
	origins := []string{"https://*", "http://*"}
	rateLimit, rateBurst := config.DefaultRateLimit, config.DefaultRateBurst
	var allowedIPs []string
	if cfg != nil {
		if len(cfg.AllowedOrigins()) > 0 {
			origins = cfg.AllowedOrigins()
		}
		rateLimit, rateBurst = cfg.RateLimit(), cfg.RateBurst()
		allowedIPs = cfg.AllowedIPs()
	}

	s := &Server{
		sessions: sessions,
		melody:   melody.New(),
		limiter:  apimiddleware.NewIPRateLimiter(rateLimit, rateBurst, nil),
	}

	s.melody.Upgrader.CheckOrigin = func(_ *http.Request) bool { return true }
	s.melody.HandleMessage(apimiddleware.WebSocketRateLimitHandler(s.limiter, s.handleWSMessage))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.HTTPIPFilterMiddleware(apimiddleware.NewIPFilter(allowedIPs)))
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(config.APIRequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{},
	}))

	r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
		err := s.melody.HandleRequest(w, r)
		if err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(apimiddleware.HTTPRateLimitMiddleware(s.limiter))
		r.Post("/api", s.handlePostRequest)
		r.Route("/api/media", func(r chi.Router) {
			r.Get("/", s.handleListMedia)
			r.Get("/{id}", s.handleGetMedia)
			r.Delete("/{id}", s.handleDeleteMedia)
			r.Post("/{id}/events", s.handlePostEvent)
		})
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Broadcast forwards notifications to every WebSocket client as JSON-RPC
// notifications until the channel closes or ctx is done.
func (s *Server) Broadcast(ctx context.Context, notifications <-chan models.Notification) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("stopping notification broadcast via context cancellation")
			return
		case notif, ok := <-notifications:
			if !ok {
				log.Debug().Msg("notification channel closed")
				return
			}

			req := models.RequestObject{
				JSONRPC: "2.0",
				Method:  notif.Method,
				Params:  notif.Params,
			}

			data, err := json.Marshal(req)
			if err != nil {
				log.Error().Err(err).Msg("marshalling notification request")
				continue
			}

			err = s.melody.Broadcast(data)
			if err != nil && !errors.Is(err, melody.ErrClosed) {
				log.Error().Err(err).Msg("broadcasting notification")
			}
		}
	}
}

// Close disconnects all WebSocket clients.
func (s *Server) Close() error {
	if err := s.melody.Close(); err != nil && !errors.Is(err, melody.ErrClosed) {
		return fmt.Errorf("failed to close websocket sessions: %w", err)
	}
	return nil
}

// Start serves the API on the configured listen address until ctx is done.
func Start(
	ctx context.Context,
	cfg *config.Instance,
	sessions requests.Sessions,
	notifications <-chan models.Notification,
) error {
	s := NewServer(cfg, sessions)

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.APIListen())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.APIListen(), err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.limiter.StartCleanup(ctx)
	go s.Broadcast(ctx, notifications)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Msg("closing websocket sessions")
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutting down http server")
		}
	}()

	log.Info().Str("address", ln.Addr().String()).Msg("api server listening")

	err = srv.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(env requests.RequestEnv, req models.RequestObject) (any, error) {
	log.Debug().Str("method", req.Method).Msg("received request")

	fn, ok := methodMap[strings.ToLower(req.Method)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, req.Method)
	}

	if req.ID == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingID, req.Method)
	}

	env.ID = *req.ID
	env.Params = req.Params
	env.Sessions = s.sessions

	return fn(env)
}

func maybeUUID(req models.RequestObject) uuid.UUID {
	if req.ID == nil {
		return uuid.Nil
	}
	return *req.ID
}
