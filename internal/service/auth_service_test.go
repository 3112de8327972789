/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"errors"
	"testing"

	"chatserver/internal/entity"
	"chatserver/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterStoresHashedSecret(t *testing.T) {
	repo := NewMockUserRepo()
	svc := NewAuthService(repo, &MockLogger{})

	user, err := svc.Register("Ada", "ada@x.io", "hunter2", "pic.png", "+390000000")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Secret.Hash == "hunter2" || user.Secret.Hash == "" {
		t.Errorf("The password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Secret.Hash), []byte("hunter2")); err != nil {
		t.Errorf("The hash does not verify against the password: %v", err)
	}
	if user.Status != entity.StatusOffline {
		t.Errorf("Wrong initial status. GOT[%s], EXPECTED[%s]", user.Status, entity.StatusOffline)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := NewMockUserRepo()
	svc := NewAuthService(repo, &MockLogger{})

	if _, err := svc.Register("Ada", "ada@x.io", "hunter2", "", ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := svc.Register("Other Ada", "ada@x.io", "different", "", "")
	if err == nil {
		t.Fatalf("Expected an error...")
	}
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail. GOT[%v]", err)
	}
}

func TestLoginMarksUserOnline(t *testing.T) {
	repo := NewMockUserRepo()
	svc := NewAuthService(repo, &MockLogger{})

	registered, _ := svc.Register("Ada", "ada@x.io", "hunter2", "", "")

	user, err := svc.Login("ada@x.io", "hunter2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Status != entity.StatusOnline {
		t.Errorf("Wrong status after login. GOT[%s], EXPECTED[%s]", user.Status, entity.StatusOnline)
	}
	if repo.users[registered.UUID].Status != entity.StatusOnline {
		t.Errorf("The status was not persisted")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := NewMockUserRepo()
	svc := NewAuthService(repo, &MockLogger{})

	svc.Register("Ada", "ada@x.io", "hunter2", "", "")

	if _, err := svc.Login("ada@x.io", "not-it"); err == nil {
		t.Errorf("Expected an error...")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := NewMockUserRepo()
	svc := NewAuthService(repo, &MockLogger{})

	if _, err := svc.Login("ghost@x.io", "whatever"); err == nil {
		t.Errorf("Expected an error...")
	}
}
