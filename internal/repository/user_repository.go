/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"chatserver/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// This repository is used to manipulate the users in the system.
// It allows creation, lookups and presence updates; users are never deleted by the server.
type UserRepository interface {
	Create(user *entity.User) error // Inserts a user, fails with ErrDuplicateEmail when the email is taken

	GetByUUID(uuid string) (*entity.User, error)     // Retrieves the user with the given uuid, fails with ErrUserNotFound if absent
	GetForLogin(email string) (*entity.User, error)  // Retrieves the user with the given email, WITH its secret, hence, used for login
	GetAll() ([]*entity.User, error)                 // Retrieves all the users, without their secret

	UpdatePresence(uuid, status string, newMessages datatypes.JSONMap) error // Persists the status and unread counters of a user
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	return mapUserError(repo.db.Create(user).Error)
}

func (repo *SQLiteUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Where("UUID = ?", uuid).First(&user).Error; err != nil {
		return nil, mapUserError(err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetForLogin(email string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Preload("Secret").Where("Email = ?", email).First(&user).Error; err != nil {
		return nil, mapUserError(err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetAll() ([]*entity.User, error) {
	var users []*entity.User
	if err := repo.db.Find(&users).Error; err != nil {
		return nil, mapUserError(err)
	}
	return users, nil
}

func (repo *SQLiteUserRepository) UpdatePresence(uuid, status string, newMessages datatypes.JSONMap) error {
	err := repo.db.Model(&entity.User{}).Where("UUID = ?", uuid).Updates(map[string]any{
		"status":       status,
		"new_messages": newMessages,
	}).Error
	return mapUserError(err)
}
