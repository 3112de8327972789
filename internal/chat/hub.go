/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package chat

import (
	"context"
	"sync"
	"time"

	"chatserver/internal/nlog"
)

// Broadcaster is the delivery surface of the hub, as seen by services and handlers.
type Broadcaster interface {
	BroadcastAll(payload []byte)                        // Delivers to every connection
	BroadcastRoom(room string, payload []byte)          // Delivers to the members of a room, sender included
	BroadcastExcept(sender *Client, payload []byte)     // Delivers to every connection but the given one
	BroadcastExceptUser(userID string, payload []byte)  // Delivers to every connection not bound to the given user
}

// Hub tracks the connected clients and their room membership, and delivers payloads to them.
// Membership is transient: a client sits in at most one room and is dropped from it on disconnect.
type Hub struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mutex  sync.RWMutex
	wg     sync.WaitGroup
	logger nlog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHub(logger nlog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Logf(format string, v ...any) {
	h.logger.Logf(format, v...)
}

// Register hands a new client to the hub's run loop
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run starts the hub's main event loop, handling client registration and unregistration.
// This method should be called in a separate goroutine as it runs until Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return

		case client := <-h.register:
			if client == nil {
				h.Logf("Received nil client registration; skipping")
				continue
			}

			h.addClient(client)

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mutex.Lock()
	client.closed = false
	h.clients[client] = true
	clientCount := len(h.clients)
	h.mutex.Unlock()
	h.Logf("Client registered from %s. Total clients: %d", client.addr, clientCount)
}

// removeClient drops the client from the connection set and from its room, so
// a disconnecting connection stops being a broadcast target.
func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mutex.Unlock()
		return
	}
	delete(h.clients, client)
	h.dropFromRoomLocked(client)
	client.closed = true
	clientCount := len(h.clients)
	h.mutex.Unlock()
	// Close the channel after releasing the lock
	close(client.send)
	h.Logf("Client unregistered from %s. Total clients: %d", client.addr, clientCount)
}

// JoinRoom moves the client from previousRoom into newRoom.
// Leaving a room the client is not a member of is a no-op, and newRoom does not have
// to be one of the configured room names.
func (h *Hub) JoinRoom(client *Client, newRoom, previousRoom string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if members, ok := h.rooms[previousRoom]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, previousRoom)
		}
	}

	members, ok := h.rooms[newRoom]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[newRoom] = members
	}
	members[client] = true
	client.room = newRoom
}

func (h *Hub) dropFromRoomLocked(client *Client) {
	if client.room == "" {
		return
	}
	if members, ok := h.rooms[client.room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, client.room)
		}
	}
	client.room = ""
}

func (h *Hub) BroadcastAll(payload []byte) {
	h.deliver(h.snapshotAll(), payload)
}

func (h *Hub) BroadcastRoom(room string, payload []byte) {
	h.deliver(h.snapshotRoom(room), payload)
}

func (h *Hub) BroadcastExcept(sender *Client, payload []byte) {
	var targets []*Client
	for _, client := range h.snapshotAll() {
		if client != sender {
			targets = append(targets, client)
		}
	}
	h.deliver(targets, payload)
}

func (h *Hub) BroadcastExceptUser(userID string, payload []byte) {
	var targets []*Client
	for _, client := range h.snapshotAll() {
		if userID == "" || client.userID != userID {
			targets = append(targets, client)
		}
	}
	h.deliver(targets, payload)
}

func (h *Hub) snapshotAll() []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

func (h *Hub) snapshotRoom(room string) []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	members := h.rooms[room]
	clients := make([]*Client, 0, len(members))
	for client := range members {
		clients = append(clients, client)
	}
	return clients
}

// deliver sends the payload to each target, unregistering the ones whose send buffer is full
func (h *Hub) deliver(targets []*Client, payload []byte) {
	var failed []*Client
	for _, client := range targets {
		if !h.safeSend(client, payload) {
			failed = append(failed, client)
		}
	}
	h.removeFailedClients(failed)
}

func (h *Hub) safeSend(client *Client, payload []byte) bool {
	defer func() {
		if r := recover(); r != nil {
			h.Logf("Recovered from panic in safeSend: %v", r)
		}
	}()

	// Hold the lock during the entire send operation to prevent race conditions
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.clients[client]
	if !exists || client.closed {
		return false
	}

	select {
	case client.send <- payload:
		return true
	default:
		return false
	}
}

func (h *Hub) removeFailedClients(clients []*Client) {
	if len(clients) == 0 {
		return
	}

	h.mutex.Lock()
	var channelsToClose []chan []byte
	for _, client := range clients {
		if _, exists := h.clients[client]; exists {
			delete(h.clients, client)
			h.dropFromRoomLocked(client)
			client.closed = true
			channelsToClose = append(channelsToClose, client.send)
			h.Logf("Client from %s removed due to full send buffer", client.addr)
		}
	}
	h.mutex.Unlock()

	// Close channels after releasing the lock
	for _, ch := range channelsToClose {
		close(ch)
	}
}

func (h *Hub) shutdownClients() {
	h.Logf("Shutting down all client connections...")

	h.mutex.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mutex.Unlock()

	for _, client := range clients {
		if client.conn != nil {
			if err := client.conn.Close(); err != nil && !isExpectedCloseError(err) {
				h.Logf("Error closing client connection from %s: %v", client.addr, err)
			}
		}
	}

	h.Logf("Closed %d client connections", len(clients))
}

// Shutdown initiates graceful shutdown of the hub and waits for all client
// goroutines to complete, or for the timeout to be reached.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.Logf("Initiating hub shutdown...")

	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.Logf("Hub shutdown completed")
		return nil
	case <-time.After(timeout):
		h.Logf("Hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
