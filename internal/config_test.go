/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.cfg")
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("Could not write the config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"http-server-port": 9090,
		"db-name": "other.db",
		"rooms": ["lounge"]
	}`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.HTTPServerPort != 9090 {
		t.Errorf("Wrong port. GOT[%d] EXPECTED[9090]", config.HTTPServerPort)
	}
	if config.DBName != "other.db" {
		t.Errorf("Wrong db name. GOT[%s] EXPECTED[other.db]", config.DBName)
	}
	if len(config.Rooms) != 1 || config.Rooms[0] != "lounge" {
		t.Errorf("Wrong rooms. GOT[%v] EXPECTED[[lounge]]", config.Rooms)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `{}`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.HTTPServerPort != 8080 {
		t.Errorf("Wrong default port. GOT[%d] EXPECTED[8080]", config.HTTPServerPort)
	}
	if config.DBName != "chat.db" {
		t.Errorf("Wrong default db name. GOT[%s] EXPECTED[chat.db]", config.DBName)
	}
	if config.ReadTimeout != 15 || config.WriteTimeout != 15 {
		t.Errorf("Wrong default timeouts. GOT[%d, %d] EXPECTED[15, 15]", config.ReadTimeout, config.WriteTimeout)
	}
	if len(config.Rooms) != 4 || config.Rooms[0] != "general" {
		t.Errorf("Wrong default rooms. GOT[%v]", config.Rooms)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.cfg")); err == nil {
		t.Errorf("Expected an error for a missing config file")
	}
}
