/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"chatserver/internal/chat"
	"chatserver/internal/entity"
	"chatserver/internal/repository"
	"chatserver/internal/service"

	"gorm.io/datatypes"
)

type MockLogger struct{}

func (m *MockLogger) Logf(format string, v ...any) {}

type MockUserService struct {
	users     map[string]*entity.User
	logoutErr error
}

func (m *MockUserService) Roster() ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *MockUserService) Logout(userID string, newMessages datatypes.JSONMap) (*entity.User, error) {
	if m.logoutErr != nil {
		return nil, m.logoutErr
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.Status = entity.StatusOffline
	user.NewMessages = newMessages
	return user, nil
}

type MockBroadcaster struct {
	all           [][]byte
	excludedUsers []string
}

func (m *MockBroadcaster) BroadcastAll(payload []byte)               { m.all = append(m.all, payload) }
func (m *MockBroadcaster) BroadcastRoom(room string, payload []byte) {}
func (m *MockBroadcaster) BroadcastExcept(sender *chat.Client, payload []byte) {}
func (m *MockBroadcaster) BroadcastExceptUser(userID string, payload []byte) {
	m.excludedUsers = append(m.excludedUsers, userID)
}

func newTestRoomHandler(users *MockUserService, broadcaster *MockBroadcaster) *RoomHandler {
	rooms := service.NewRoomRegistry([]string{"general", "tech", "finance"})
	return NewRoomHandler(rooms, users, broadcaster, &MockLogger{})
}

func TestRoomsListsConfiguredRooms(t *testing.T) {
	h := newTestRoomHandler(&MockUserService{}, &MockBroadcaster{})

	req := httptest.NewRequest("GET", "/rooms", nil)
	rr := httptest.NewRecorder()
	h.Rooms(rr, req)

	if rr.Code != 200 {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var rooms []string
	if err := json.Unmarshal(rr.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("Unparsable body: %v", err)
	}
	if len(rooms) != 3 || rooms[0] != "general" {
		t.Errorf("Wrong room list. GOT[%v]", rooms)
	}
}

func TestLogoutBroadcastsRosterExceptRequester(t *testing.T) {
	users := &MockUserService{users: map[string]*entity.User{
		"u1": {UUID: "u1", Status: entity.StatusOnline},
	}}
	broadcaster := &MockBroadcaster{}
	h := newTestRoomHandler(users, broadcaster)

	body := `{"_id":"u1","newMessages":{"general":2}}`
	req := httptest.NewRequest("DELETE", "/logout", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != 200 {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("Expected an empty body, got %q", rr.Body.String())
	}
	if users.users["u1"].Status != entity.StatusOffline {
		t.Errorf("The user was not marked offline")
	}
	if len(broadcaster.excludedUsers) != 1 || broadcaster.excludedUsers[0] != "u1" {
		t.Errorf("The roster broadcast should exclude the requester. GOT[%v]", broadcaster.excludedUsers)
	}
}

func TestLogoutUnknownUser(t *testing.T) {
	users := &MockUserService{users: map[string]*entity.User{}}
	broadcaster := &MockBroadcaster{}
	h := newTestRoomHandler(users, broadcaster)

	req := httptest.NewRequest("DELETE", "/logout", strings.NewReader(`{"_id":"ghost"}`))
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != 400 {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("Expected an empty body, got %q", rr.Body.String())
	}
	if len(broadcaster.excludedUsers) != 0 {
		t.Errorf("A failed logout must not produce a roster broadcast")
	}
}

func TestLogoutMalformedBody(t *testing.T) {
	broadcaster := &MockBroadcaster{}
	h := newTestRoomHandler(&MockUserService{}, broadcaster)

	req := httptest.NewRequest("DELETE", "/logout", strings.NewReader(`not json`))
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != 400 {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
	if len(broadcaster.excludedUsers) != 0 {
		t.Errorf("A failed logout must not produce a roster broadcast")
	}
}
