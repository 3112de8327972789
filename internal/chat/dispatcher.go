/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package chat

import (
	"encoding/json"

	"chatserver/internal/entity"
	"chatserver/internal/nlog"
)

// MessageProvider is what the dispatcher needs from the message fan-out service.
type MessageProvider interface {
	Submit(content, sender, room, timeLabel, dateLabel string) (*entity.Message, error) // Persists a message addressed to a room
	History(room string) ([]*entity.MessageGroup, error)                                // Returns the room's history, date groups in chronological order
}

// RosterProvider is what the dispatcher needs from the user directory.
type RosterProvider interface {
	Roster() ([]*entity.User, error) // Returns every known user with its presence state
}

// Dispatcher routes inbound client events to the services and turns the results
// into outbound deliveries. Each call runs on the client's read goroutine, so
// store I/O here never blocks other connections.
type Dispatcher struct {
	hub      *Hub
	messages MessageProvider
	roster   RosterProvider
	logger   nlog.Logger
}

func NewDispatcher(hub *Hub, messages MessageProvider, roster RosterProvider, logger nlog.Logger) *Dispatcher {
	return &Dispatcher{
		hub:      hub,
		messages: messages,
		roster:   roster,
		logger:   logger,
	}
}

func (d *Dispatcher) Logf(format string, v ...any) {
	d.logger.Logf(format, v...)
}

// Dispatch decodes one inbound frame and handles its event.
func (d *Dispatcher) Dispatch(client *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		d.Logf("Invalid event from %s: %v", client.addr, err)
		d.hub.safeSend(client, NewErrorEvent("malformed event"))
		return
	}

	switch env.Event {
	case EventNewUser:
		d.handleNewUser(client)
	case EventJoinRoom:
		d.handleJoinRoom(client, env)
	case EventMessageRoom:
		d.handleMessageRoom(client, env)
	default:
		d.Logf("Unknown event %q from %s", env.Event, client.addr)
		d.hub.safeSend(client, NewErrorEvent("unknown event"))
	}
}

// A connecting client asks for the roster; the refreshed snapshot goes to
// every connection, the requester included, so existing members discover the
// newcomer and the newcomer discovers them.
func (d *Dispatcher) handleNewUser(client *Client) {
	members, err := d.roster.Roster()
	if err != nil {
		d.Logf("Roster retrieval failed: %v", err)
		d.hub.safeSend(client, NewErrorEvent("could not retrieve the member list"))
		return
	}
	d.hub.BroadcastAll(NewRosterEvent(members))
}

// The membership transition happens even when the history read fails, the
// client just gets an error event instead of the history it asked for.
func (d *Dispatcher) handleJoinRoom(client *Client, env Envelope) {
	d.hub.JoinRoom(client, env.Room, env.PreviousRoom)

	groups, err := d.messages.History(env.Room)
	if err != nil {
		d.Logf("History retrieval for room %q failed: %v", env.Room, err)
		d.hub.safeSend(client, NewErrorEvent("could not retrieve the room history"))
		return
	}
	// History goes to the joining connection alone, not to the whole room
	d.hub.safeSend(client, NewHistoryEvent(groups))
}

// The refreshed history goes to the whole room, sender included; the activity
// ping goes to everyone else. The asymmetry is intentional and mirrors how the
// clients consume the two events.
func (d *Dispatcher) handleMessageRoom(client *Client, env Envelope) {
	if _, err := d.messages.Submit(env.Content, env.Sender, env.Room, env.Time, env.Date); err != nil {
		d.Logf("Message submission to room %q failed: %v", env.Room, err)
		d.hub.safeSend(client, NewErrorEvent("message was not delivered"))
		return
	}

	groups, err := d.messages.History(env.Room)
	if err != nil {
		d.Logf("History refresh for room %q failed: %v", env.Room, err)
		d.hub.safeSend(client, NewErrorEvent("message stored but history refresh failed"))
		return
	}

	d.hub.BroadcastRoom(env.Room, NewHistoryEvent(groups))
	d.hub.BroadcastExcept(client, NewNotificationEvent(env.Room))
}
