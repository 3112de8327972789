/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"fmt"

	"chatserver/internal/entity"

	"gorm.io/gorm"
)

// This repository is used to manipulate the messages in the system.
// Messages are append-only: there is no update or delete operation.
type MessageRepository interface {
	Create(message *entity.Message) error // Inserts a message

	GetGroupedByDate(room string) ([]*entity.MessageGroup, error) // Retrieves all the messages sent to room, grouped by their date label
}

// Implementation of the repository using a SQLite DB
type SQLiteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) Create(message *entity.Message) error {
	if err := repo.db.Create(message).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GetGroupedByDate returns one group per distinct date label among the messages of the room.
// Messages keep their insertion order inside each group; the order of the groups
// themselves follows the store scan and carries no meaning, callers sort it.
func (repo *SQLiteMessageRepository) GetGroupedByDate(room string) ([]*entity.MessageGroup, error) {
	var messages []*entity.Message
	if err := repo.db.Where("to_room = ?", room).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	byDate := make(map[string]*entity.MessageGroup)
	var groups []*entity.MessageGroup
	for _, message := range messages {
		group, ok := byDate[message.Date]
		if !ok {
			group = &entity.MessageGroup{Date: message.Date}
			byDate[message.Date] = group
			groups = append(groups, group)
		}
		group.Messages = append(group.Messages, message)
	}

	return groups, nil
}
