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
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apimiddleware "github.com/ZaparooProject/zaparoo-playcount/pkg/api/middleware"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/validation"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/service/sessions"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxBodySize = 64 * 1024

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("error writing json response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := models.HTTPError{Error: err.Error()}
	var ve *validation.Error
	if errors.As(err, &ve) {
		for _, fe := range ve.Fields {
			body.Fields = append(body.Fields, fe.Field)
		}
	}
	writeJSON(w, status, body)
}

func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}

	reply := s.processRequest(body, apimiddleware.IsLoopbackAddr(r.RemoteAddr))
	if reply == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(reply); err != nil {
		log.Error().Err(err).Msg("error writing post response")
	}
}

func (s *Server) handleListMedia(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.SessionsResponse{
		Sessions: s.sessions.List(),
	})
}

func (s *Server) handleGetMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resp, err := s.sessions.Status(id)
	if errors.Is(err, sessions.ErrUnknownMedia) {
		writeError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.sessions.Remove(id)
	if errors.Is(err, sessions.ErrUnknownMedia) {
		writeError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	var params models.MediaEventParams
	if err := validation.ValidateAndUnmarshal(body, &params); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ev := &models.MediaEvent{
		MediaID:  id,
		Type:     params.Type,
		Position: params.Position,
		Duration: params.Duration,
	}

	err = s.sessions.HandleEvent(ev)
	var ve *validation.Error
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, sessions.ErrUnknownMedia):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
