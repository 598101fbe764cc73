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

package methods

import (
	"fmt"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models/requests"
	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/validation"
	"github.com/rs/zerolog/log"
)

func HandleMedia(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received media request")
	return models.SessionsResponse{
		Sessions: env.Sessions.List(),
	}, nil
}

func HandleMediaStatus(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.MediaIDParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	log.Info().Str("media_id", params.MediaID).Msg("received media status request")

	resp, err := env.Sessions.Status(params.MediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get media status: %w", err)
	}
	return resp, nil
}

func HandleMediaEvent(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.MediaEvent
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	if err := env.Sessions.HandleEvent(&params); err != nil {
		return nil, fmt.Errorf("failed to handle media event: %w", err)
	}
	return NoContent{}, nil
}

func HandleMediaDetach(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.MediaIDParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	log.Info().Str("media_id", params.MediaID).Msg("received media detach request")

	if err := env.Sessions.Remove(params.MediaID); err != nil {
		return nil, fmt.Errorf("failed to detach media: %w", err)
	}
	return NoContent{}, nil
}
