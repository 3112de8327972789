/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Presence status values for a user.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Represents a registered user of the chat system.
type User struct {
	UUID        string            `gorm:"primaryKey" json:"_id"`                  // Unique identifier
	Name        string            `gorm:"not null" json:"name"`                   // Display name
	Email       string            `gorm:"uniqueIndex;not null" json:"email"`      // Email, globally unique
	Picture     string            `json:"picture"`                                // Profile picture reference
	PhoneNumber string            `json:"phoneNumber"`                            // Phone number
	Status      string            `gorm:"not null;default:offline" json:"status"` // Presence status, either "online" or "offline"
	NewMessages datatypes.JSONMap `gorm:"type:json" json:"newMessages"`           // Unread message counters, keyed by room name
	CreatedAt   time.Time         `gorm:"not null" json:"-"`                      // Time of registration

	Secret UserSecret `gorm:"foreignKey:UserUUID;references:UUID" json:"-"` // Credential secret, stored in its own table
}
