/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"chatserver/internal/entity"
	"chatserver/internal/nlog"
	"chatserver/internal/repository"

	"github.com/google/uuid"
)

// Service used to persist room messages and compute the canonical room history
type MessageService interface {
	Submit(content, sender, room, timeLabel, dateLabel string) (*entity.Message, error) // Persists a message addressed to a room
	History(room string) ([]*entity.MessageGroup, error)                                // Returns the room history, date groups in chronological order
}

type localMessageService struct {
	messageRepository repository.MessageRepository // Repository for messages
	rooms             *RoomRegistry                // Fixed room set, only used to log submissions outside it
	logger            nlog.Logger                  // Logs a format string
}

func NewMessageService(messageRepo repository.MessageRepository, rooms *RoomRegistry, logger nlog.Logger) MessageService {
	return &localMessageService{
		messageRepository: messageRepo,
		rooms:             rooms,
		logger:            logger,
	}
}

func (m *localMessageService) Logf(format string, v ...any) {
	m.logger.Logf(format, v...)
}

// Submit persists the message. Persisting and the subsequent history refresh are
// two separate steps: two concurrent submissions to the same room may interleave,
// and the last refresh wins for the broadcast content. That is accepted, the
// store keeps both messages either way.
func (m *localMessageService) Submit(content, sender, room, timeLabel, dateLabel string) (*entity.Message, error) {
	if !m.rooms.Contains(room) {
		m.Logf("Room %q is not in the configured set, storing anyway", room)
	}

	message := &entity.Message{
		UUID:      uuid.New().String(),
		Content:   content,
		From:      sender,
		ToRoom:    room,
		Time:      timeLabel,
		Date:      dateLabel,
		CreatedAt: time.Now(),
	}
	if err := m.messageRepository.Create(message); err != nil {
		return nil, fmt.Errorf("message was not created: %w", err)
	}

	m.Logf("Message %s stored for room %q", message.UUID, room)
	return message, nil
}

func (m *localMessageService) History(room string) ([]*entity.MessageGroup, error) {
	groups, err := m.messageRepository.GetGroupedByDate(room)
	if err != nil {
		return nil, fmt.Errorf("history of room %q was not retrieved: %w", room, err)
	}
	SortGroupsByDate(groups)
	return groups, nil
}

// SortGroupsByDate orders the date groups chronologically ascending.
// The date labels are MM/DD/YYYY strings, so the key is built by rearranging the
// components to YYYY+MM+DD and comparing the result as a plain string. No time
// parsing happens here: malformed labels sort by the same rearrangement.
func SortGroupsByDate(groups []*entity.MessageGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return dateSortKey(groups[i].Date) < dateSortKey(groups[j].Date)
	})
}

// Missing components read as the literal "undefined", which keys labels with
// fewer than three components after every well-formed YYYY+MM+DD key.
func dateSortKey(date string) string {
	parts := strings.Split(date, "/")
	for len(parts) < 3 {
		parts = append(parts, "undefined")
	}
	return parts[2] + parts[0] + parts[1]
}
