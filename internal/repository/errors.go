/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy of the persistence layer.
// Callers match on these with errors.Is instead of inspecting gorm errors directly.
var (
	ErrDuplicateEmail   = errors.New("a user with this email already exists") // Unique key conflict on the users table
	ErrUserNotFound     = errors.New("user was not found")                    // Lookup of an absent user
	ErrStoreUnavailable = errors.New("the store could not complete the operation")
)

// Maps a raw gorm error to the repository taxonomy.
// Requires the DB to be opened with TranslateError so that unique violations surface as gorm.ErrDuplicatedKey.
func mapUserError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
