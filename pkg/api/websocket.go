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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	apimiddleware "github.com/ZaparooProject/zaparoo-playcount/pkg/api/middleware"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/validation"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

// errorObjectFor maps a handler error onto a JSON-RPC error object.
func errorObjectFor(err error) models.ErrorObject {
	var ve *validation.Error
	switch {
	case errors.Is(err, ErrUnknownMethod):
		return JSONRPCErrorMethodNotFound
	case errors.Is(err, ErrMissingID):
		return JSONRPCErrorInvalidRequest
	case errors.Is(err, validation.ErrMissingParams),
		errors.Is(err, validation.ErrInvalidParams),
		errors.As(err, &ve):
		return models.ErrorObject{
			Code:    JSONRPCErrorInvalidParams.Code,
			Message: err.Error(),
		}
	default:
		return models.ErrorObject{
			Code:    JSONRPCErrorServerError.Code,
			Message: err.Error(),
		}
	}
}

func marshalResponse(id uuid.UUID, result any) ([]byte, error) {
	resp := models.ResponseObject{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("error marshalling response: %w", err)
	}
	return data, nil
}

func marshalError(id uuid.UUID, errObj models.ErrorObject) ([]byte, error) {
	resp := models.ResponseErrorObject{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &errObj,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("error marshalling error response: %w", err)
	}
	return data, nil
}

// processRequest runs one JSON-RPC payload and returns the encoded reply,
// or nil when no reply is due.
func (s *Server) processRequest(msg []byte, isLocal bool) []byte {
	if !json.Valid(msg) {
		log.Error().Msg("data not valid json")
		data, err := marshalError(uuid.Nil, JSONRPCErrorParseError)
		if err != nil {
			log.Error().Err(err).Msg("error encoding error response")
		}
		return data
	}

	var req models.RequestObject
	err := json.Unmarshal(msg, &req)
	if err != nil || req.JSONRPC != "2.0" || req.Method == "" {
		log.Error().Str("jsonrpc", req.JSONRPC).Msg("invalid request payload")
		data, mErr := marshalError(maybeUUID(req), JSONRPCErrorInvalidRequest)
		if mErr != nil {
			log.Error().Err(mErr).Msg("error encoding error response")
		}
		return data
	}

	if req.ID == nil {
		log.Info().Str("method", req.Method).Msg("received notification, ignoring")
		return nil
	}

	result, err := s.handleRequest(requests.RequestEnv{IsLocal: isLocal}, req)
	if err != nil {
		log.Warn().Err(err).Str("method", req.Method).Msg("request failed")
		data, mErr := marshalError(*req.ID, errorObjectFor(err))
		if mErr != nil {
			log.Error().Err(mErr).Msg("error encoding error response")
		}
		return data
	}

	data, err := marshalResponse(*req.ID, result)
	if err != nil {
		log.Error().Err(err).Msg("error encoding response")
		data, _ = marshalError(*req.ID, JSONRPCErrorServerError)
	}
	return data
}

func (s *Server) handleWSMessage(session *melody.Session, msg []byte) {
	// ping command for heartbeat operation
	if bytes.Equal(msg, []byte("ping")) {
		err := session.Write([]byte("pong"))
		if err != nil {
			log.Error().Err(err).Msg("sending pong")
		}
		return
	}

	reply := s.processRequest(msg, apimiddleware.IsLoopbackAddr(session.Request.RemoteAddr))
	if reply == nil {
		return
	}
	if err := session.Write(reply); err != nil {
		log.Error().Err(err).Msg("error sending response")
	}
}
