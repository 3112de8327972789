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
)

// Names of the events travelling over the realtime channel, one JSON envelope per frame.
const (
	EventNewUser       = "new-user"      // in: roster request / out: full roster snapshot
	EventJoinRoom      = "join-room"     // in: membership transition
	EventMessageRoom   = "message-room"  // in: message submission
	EventRoomMessages  = "room-messages" // out: date-grouped room history
	EventNotifications = "notifications" // out: lightweight room activity ping
	EventError         = "error"         // out: failure report towards the originating connection
)

// Envelope is the single wire format of inbound events.
// Only the fields of the named event are set, the rest stay zero.
type Envelope struct {
	Event        string `json:"event"`
	Room         string `json:"room,omitempty"`
	PreviousRoom string `json:"previousRoom,omitempty"`
	Content      string `json:"content,omitempty"`
	Sender       string `json:"sender,omitempty"`
	Time         string `json:"time,omitempty"`
	Date         string `json:"date,omitempty"`
}

type rosterEvent struct {
	Event   string         `json:"event"`
	Members []*entity.User `json:"members"`
}

type historyEvent struct {
	Event    string                 `json:"event"`
	Messages []*entity.MessageGroup `json:"messages"`
}

type notificationEvent struct {
	Event string `json:"event"`
	Room  string `json:"room"`
}

type errorEvent struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// NewRosterEvent builds the payload of a full roster snapshot
func NewRosterEvent(members []*entity.User) []byte {
	return mustMarshal(rosterEvent{Event: EventNewUser, Members: members})
}

// NewHistoryEvent builds the payload of a room history delivery
func NewHistoryEvent(groups []*entity.MessageGroup) []byte {
	return mustMarshal(historyEvent{Event: EventRoomMessages, Messages: groups})
}

// NewNotificationEvent builds the payload of a room activity ping
func NewNotificationEvent(room string) []byte {
	return mustMarshal(notificationEvent{Event: EventNotifications, Room: room})
}

// NewErrorEvent builds the payload of a failure report
func NewErrorEvent(message string) []byte {
	return mustMarshal(errorEvent{Event: EventError, Message: message})
}

// The event structs above contain no unmarshalable types, so a marshal failure
// would be a programming error, not a runtime condition.
func mustMarshal(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return payload
}
