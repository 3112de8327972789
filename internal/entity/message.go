/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Represents a message sent to a chat room. Messages are immutable once created.
type Message struct {
	UUID      string    `gorm:"primaryKey" json:"_id"`       // Unique identifier
	Content   string    `gorm:"not null" json:"content"`     // Actual content of the message
	From      string    `gorm:"index" json:"from"`           // Identifier of the sending user
	ToRoom    string    `gorm:"index;not null" json:"to"`    // Name of the room the message was sent to
	Time      string    `gorm:"not null" json:"time"`        // Time label the client attached, e.g. "10:00"
	Date      string    `gorm:"index;not null" json:"date"`  // Date label the client attached, in MM/DD/YYYY form. Used as the grouping key
	CreatedAt time.Time `gorm:"not null;index" json:"-"`     // Time of insertion, fixes the order inside a date group
}

// A date group of messages, as returned by the store's grouped retrieval.
// Messages keep their insertion order inside the group.
type MessageGroup struct {
	Date     string     `json:"_id"`            // The date label shared by all messages of the group
	Messages []*Message `json:"messagesByDate"` // The messages of that date, in insertion order
}
