/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

// RoomRegistry holds the fixed set of room names, known at process start.
// It offers the room choices to clients; joining or messaging a name outside
// the set is NOT rejected anywhere, the history of such a room simply starts empty.
type RoomRegistry struct {
	rooms []string
}

func NewRoomRegistry(rooms []string) *RoomRegistry {
	return &RoomRegistry{rooms: append([]string{}, rooms...)}
}

// List returns the configured room names, in configuration order
func (r *RoomRegistry) List() []string {
	return append([]string{}, r.rooms...)
}

// Contains reports whether name is one of the configured rooms
func (r *RoomRegistry) Contains(name string) bool {
	for _, room := range r.rooms {
		if room == name {
			return true
		}
	}
	return false
}
