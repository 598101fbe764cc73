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

package requests

import (
	"encoding/json"

	"github.com/ZaparooProject/zaparoo-playcount/pkg/api/models"
	"github.com/google/uuid"
)

// Sessions is the view of the session manager available to API handlers.
type Sessions interface {
	HandleEvent(ev *models.MediaEvent) error
	Status(id string) (models.SessionResponse, error)
	List() []models.SessionResponse
	Remove(id string) error
}

type RequestEnv struct {
	Sessions Sessions
	Params   json.RawMessage
	ID       uuid.UUID
	IsLocal  bool
}
