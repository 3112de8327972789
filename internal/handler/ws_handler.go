/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"chatserver/internal/chat"
	"chatserver/internal/middleware"
	"chatserver/internal/nlog"

	"github.com/gorilla/websocket"
)

// WSHandler upgrades HTTP requests to websocket connections and hands them to the hub
type WSHandler struct {
	hub        *chat.Hub
	dispatcher *chat.Dispatcher
	upgrader   websocket.Upgrader
	logger     nlog.Logger
}

func NewWSHandler(hub *chat.Hub, dispatcher *chat.Dispatcher, logger nlog.Logger) *WSHandler {
	return &WSHandler{
		hub:        hub,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients connect from arbitrary origins, same as the HTTP surface
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeWS upgrades the connection and registers the resulting client.
// When the request carries an auth session, the connection is bound to that
// user so presence broadcasts can exclude it.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userUUID := middleware.UserUUID(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Logf("Websocket upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	client := chat.NewClient(conn, h.hub, h.dispatcher, userUUID, r.RemoteAddr)
	h.hub.Register(client)
}
