/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"encoding/json"
	"net/http"

	"chatserver/internal/chat"
	"chatserver/internal/nlog"
	"chatserver/internal/service"

	"gorm.io/datatypes"
)

type logoutReqFields struct {
	ID          string            `json:"_id"`
	NewMessages datatypes.JSONMap `json:"newMessages"`
}

// RoomHandler is used to handle the room listing and the logout route.
// Logout lives here rather than with the account routes because its side effect
// is a presence broadcast towards the connected clients.
type RoomHandler struct {
	rooms       *service.RoomRegistry
	userService service.UserService
	broadcaster chat.Broadcaster
	logger      nlog.Logger
}

func NewRoomHandler(rooms *service.RoomRegistry, userService service.UserService, broadcaster chat.Broadcaster, logger nlog.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:       rooms,
		userService: userService,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Returns the configured room names
func (h *RoomHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rooms.List())
}

// Marks the user offline, persists its unread counters as supplied, and
// re-broadcasts the roster to every connection except the requester's own.
// Responds 200 with an empty body on success, 400 with an empty body on any failure.
func (h *RoomHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var request logoutReqFields
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Logf("Logout request was malformed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := h.userService.Logout(request.ID, request.NewMessages); err != nil {
		h.logger.Logf("Logout of %q failed: %v", request.ID, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	members, err := h.userService.Roster()
	if err != nil {
		h.logger.Logf("Roster refresh after logout failed: %v", err)
	} else {
		h.broadcaster.BroadcastExceptUser(request.ID, chat.NewRosterEvent(members))
	}

	w.WriteHeader(http.StatusOK)
}
