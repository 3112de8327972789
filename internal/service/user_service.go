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

	"chatserver/internal/entity"
	"chatserver/internal/nlog"
	"chatserver/internal/repository"

	"gorm.io/datatypes"
)

// Service used to read the user directory and record presence transitions
type UserService interface {
	Roster() ([]*entity.User, error)                                              // Returns every known user with its presence state
	Logout(userID string, newMessages datatypes.JSONMap) (*entity.User, error)    // Marks the user offline and persists its unread counters
}

type localUserService struct {
	userRepository repository.UserRepository // Repository for users
	logger         nlog.Logger               // Logs a format string
}

func NewUserService(userRepo repository.UserRepository, logger nlog.Logger) UserService {
	return &localUserService{
		userRepository: userRepo,
		logger:         logger,
	}
}

func (u *localUserService) Logf(format string, v ...any) {
	u.logger.Logf(format, v...)
}

func (u *localUserService) Roster() ([]*entity.User, error) {
	users, err := u.userRepository.GetAll()
	if err != nil {
		return nil, fmt.Errorf("roster was not retrieved: %w", err)
	}
	u.Logf("Found %d users", len(users))
	return users, nil
}

// Logout fails with repository.ErrUserNotFound when the id is unknown.
// The unread counters arrive from the client and are persisted as supplied,
// no validation of their values happens here.
func (u *localUserService) Logout(userID string, newMessages datatypes.JSONMap) (*entity.User, error) {
	user, err := u.userRepository.GetByUUID(userID)
	if err != nil {
		return nil, err
	}

	user.Status = entity.StatusOffline
	user.NewMessages = newMessages
	if err := u.userRepository.UpdatePresence(userID, entity.StatusOffline, newMessages); err != nil {
		return nil, err
	}

	u.Logf("User %s logged out", userID)
	return user, nil
}
