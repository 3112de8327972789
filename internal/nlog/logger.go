/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package nlog

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger is something that can print, using Logf, a format string
type Logger interface {
	Logf(format string, v ...any)
}

// subsystemLogger is a logger that prefixes every line with the name of its subsystem
type subsystemLogger struct {
	name   string
	logger *ServerLogger
}

// Logf for a subsystem logger is just a wrap for the Logf of its parent, giving its subsystem name
func (s *subsystemLogger) Logf(format string, v ...any) {
	s.logger.logf(s.name, format, v...)
}

// ServerLogger writes prefixed log lines for every subsystem of the server from one single struct.
// It's safe to share amongst goroutines since it has an internal lock.
type ServerLogger struct {
	lock    sync.Mutex
	enabled bool
	logger  *log.Logger
	file    *os.File // nil when logging to stderr
}

// NewServerLogger creates a logger writing to the file at path, or to stderr when path is empty.
// When successful, error is nil
func NewServerLogger(path string, enabled bool) (*ServerLogger, error) {
	out := os.Stderr
	var file *os.File
	if path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		out = f
		file = f
	}

	return &ServerLogger{
		enabled: enabled,
		logger:  log.New(out, "", log.Ldate|log.Ltime),
		file:    file,
	}, nil
}

// Subsystem returns a Logger whose lines carry the given subsystem name
func (s *ServerLogger) Subsystem(name string) Logger {
	return &subsystemLogger{name, s}
}

// EnableLogging enables the logging done by this logger
func (s *ServerLogger) EnableLogging() {
	s.lock.Lock()
	s.enabled = true
	s.lock.Unlock()
}

// DisableLogging disables the logging done by this logger
func (s *ServerLogger) DisableLogging() {
	s.lock.Lock()
	s.enabled = false
	s.lock.Unlock()
}

// Logf writes a line with no subsystem prefix
func (s *ServerLogger) Logf(format string, v ...any) {
	s.logf("server", format, v...)
}

func (s *ServerLogger) logf(name, format string, v ...any) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.enabled {
		return
	}
	s.logger.Printf(fmt.Sprintf("[%s]: %s", name, format), v...)
}

// Close closes the log file, if one was opened
func (s *ServerLogger) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.file != nil {
		s.file.Sync()
		s.file.Close()
		s.file = nil
	}
}
