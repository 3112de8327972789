/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package internal

import (
	"encoding/json"
	"io"
	"os"
)

type Config struct {
	HTTPServerPort uint16   `json:"http-server-port"`
	DBName         string   `json:"db-name"`
	EnableLogging  bool     `json:"enable-logging"`
	LogFile        string   `json:"log-file"`
	ReadTimeout    int64    `json:"read-timeout"`
	WriteTimeout   int64    `json:"write-timeout"`
	SecretKey      string   `json:"secret-key"`
	Rooms          []string `json:"rooms"`
}

// The room set is fixed at process start; when the config names none, this one is served.
var defaultRooms = []string{"general", "tech", "finance", "crypto"}

func LoadConfig(path string) (*Config, error) {

	file, err := os.OpenFile(path, os.O_RDONLY, 0755)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var config *Config = &Config{}
	if err = json.Unmarshal(payload, config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.HTTPServerPort == 0 {
		c.HTTPServerPort = 8080
	}
	if c.DBName == "" {
		c.DBName = "chat.db"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if len(c.Rooms) == 0 {
		c.Rooms = append([]string{}, defaultRooms...)
	}
}
