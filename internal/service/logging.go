package service

import (
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// orNop returns l, or a logger that discards everything when l is nil.
func orNop(l logger.Logger) logger.Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

type nopLogger struct{}

func (nopLogger) Print(string)   {}
func (nopLogger) Trace(string)   {}
func (nopLogger) Debug(string)   {}
func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
func (nopLogger) Fatal(string)   {}

// MockLogger is a test-friendly logger.Logger that records every line.
type MockLogger struct {
	mu    sync.Mutex
	Lines []LogLine
}

// LogLine is one recorded log call.
type LogLine struct {
	Level   string
	Message string
}

func (m *MockLogger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, LogLine{Level: level, Message: msg})
}

// Count returns how many lines were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Lines {
		if l.Level == level {
			n++
		}
	}
	return n
}

func (m *MockLogger) Print(msg string)   { m.record("print", msg) }
func (m *MockLogger) Trace(msg string)   { m.record("trace", msg) }
func (m *MockLogger) Debug(msg string)   { m.record("debug", msg) }
func (m *MockLogger) Info(msg string)    { m.record("info", msg) }
func (m *MockLogger) Warning(msg string) { m.record("warning", msg) }
func (m *MockLogger) Error(msg string)   { m.record("error", msg) }
func (m *MockLogger) Fatal(msg string)   { m.record("fatal", msg) }
