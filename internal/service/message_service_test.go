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
)

type MockLogger struct{}

func (m *MockLogger) Logf(format string, v ...any) {}

// In-memory message store mimicking the grouped retrieval contract:
// groups appear in first-seen order, messages keep insertion order.
type MockMessageRepo struct {
	messages  []*entity.Message
	createErr error
	getErr    error
}

func (m *MockMessageRepo) Create(message *entity.Message) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *MockMessageRepo) GetGroupedByDate(room string) ([]*entity.MessageGroup, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	byDate := make(map[string]*entity.MessageGroup)
	var groups []*entity.MessageGroup
	for _, message := range m.messages {
		if message.ToRoom != room {
			continue
		}
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

func newTestMessageService(repo repository.MessageRepository) MessageService {
	rooms := NewRoomRegistry([]string{"general", "tech"})
	return NewMessageService(repo, rooms, &MockLogger{})
}

func TestSubmitThenHistoryContainsMessage(t *testing.T) {
	repo := &MockMessageRepo{}
	svc := newTestMessageService(repo)

	if _, err := svc.Submit("hi", "u1", "general", "10:00", "01/15/2024"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	groups, err := svc.History("general")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("Expected 1 date group, got %d", len(groups))
	}
	if groups[0].Date != "01/15/2024" {
		t.Errorf("Wrong date key. GOT[%s], EXPECTED[01/15/2024]", groups[0].Date)
	}
	if len(groups[0].Messages) != 1 || groups[0].Messages[0].Content != "hi" {
		t.Errorf("The submitted message is missing from the history")
	}
}

func TestHistoryOrdersDateGroupsChronologically(t *testing.T) {
	// Lexicographic comparison of the raw labels would put 01/01/2024 first
	submissions := [][2]string{
		{"new year", "01/01/2024"},
		{"old year", "12/31/2023"},
	}

	for _, order := range [][2]int{{0, 1}, {1, 0}} {
		repo := &MockMessageRepo{}
		svc := newTestMessageService(repo)

		for _, i := range order {
			if _, err := svc.Submit(submissions[i][0], "u1", "general", "23:59", submissions[i][1]); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
		}

		groups, err := svc.History("general")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("Expected 2 date groups, got %d", len(groups))
		}
		if groups[0].Date != "12/31/2023" || groups[1].Date != "01/01/2024" {
			t.Errorf("Wrong group order. GOT[%s, %s], EXPECTED[12/31/2023, 01/01/2024]", groups[0].Date, groups[1].Date)
		}
	}
}

func TestHistoryKeepsInsertionOrderInsideGroup(t *testing.T) {
	repo := &MockMessageRepo{}
	svc := newTestMessageService(repo)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.Submit(content, "u1", "tech", "09:00", "03/02/2025"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	groups, _ := svc.History("tech")
	if len(groups) != 1 || len(groups[0].Messages) != 3 {
		t.Fatalf("Expected one group of 3 messages")
	}
	for i, expected := range []string{"first", "second", "third"} {
		if groups[0].Messages[i].Content != expected {
			t.Errorf("Wrong order at %d. GOT[%s], EXPECTED[%s]", i, groups[0].Messages[i].Content, expected)
		}
	}
}

func TestHistoryScopedToRoom(t *testing.T) {
	repo := &MockMessageRepo{}
	svc := newTestMessageService(repo)

	svc.Submit("for general", "u1", "general", "10:00", "01/15/2024")
	svc.Submit("for tech", "u1", "tech", "10:00", "01/15/2024")

	groups, _ := svc.History("tech")
	if len(groups) != 1 || len(groups[0].Messages) != 1 {
		t.Fatalf("Expected exactly the tech message")
	}
	if groups[0].Messages[0].Content != "for tech" {
		t.Errorf("Wrong message. GOT[%s], EXPECTED[for tech]", groups[0].Messages[0].Content)
	}
}

func TestHistoryOfUnknownRoomIsEmpty(t *testing.T) {
	repo := &MockMessageRepo{}
	svc := newTestMessageService(repo)

	groups, err := svc.History("not-configured")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected empty history, got %d groups", len(groups))
	}
}

func TestSubmitSurfacesStoreFailure(t *testing.T) {
	repo := &MockMessageRepo{createErr: repository.ErrStoreUnavailable}
	svc := newTestMessageService(repo)

	_, err := svc.Submit("hi", "u1", "general", "10:00", "01/15/2024")
	if err == nil {
		t.Fatalf("Expected an error...")
	}
	if !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Errorf("The store failure should stay matchable. GOT[%v]", err)
	}
}

func TestDateSortKeyRearrangement(t *testing.T) {
	cases := []struct {
		date     string
		expected string
	}{
		{"01/15/2024", "20240115"},
		{"12/31/2023", "20231231"},
		{"nonsense", "undefinednonsenseundefined"},
		{"a/b", "undefinedab"},
	}
	for _, c := range cases {
		if got := dateSortKey(c.date); got != c.expected {
			t.Errorf("Wrong key for %q. GOT[%s], EXPECTED[%s]", c.date, got, c.expected)
		}
	}
}

func TestSortGroupsByDatePutsMalformedLabelsLast(t *testing.T) {
	// "undefined..." keys compare greater than any digit-only YYYY+MM+DD key
	groups := []*entity.MessageGroup{
		{Date: "1/2"},
		{Date: "01/15/2024"},
		{Date: "nonsense"},
		{Date: "12/31/2023"},
	}

	SortGroupsByDate(groups)

	expected := []string{"12/31/2023", "01/15/2024", "1/2", "nonsense"}
	for i, date := range expected {
		if groups[i].Date != date {
			t.Errorf("Wrong group at %d. GOT[%s], EXPECTED[%s]", i, groups[i].Date, date)
		}
	}
}
