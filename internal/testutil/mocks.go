package testutil

import (
	"context"
	"sync"
	"time"

	"alertd/internal/notify"
	"alertd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a copy of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	Admitted      map[string]int
	Capped        int
	FramesDropped int
	Reconnects    int
	States        []int
	PersistCalls  int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
}

func (m *MockMetrics) IncAdmitted(alertType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Admitted == nil {
		m.Admitted = make(map[string]int)
	}
	m.Admitted[alertType]++
}

func (m *MockMetrics) IncCapped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Capped++
}

func (m *MockMetrics) IncFramesDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FramesDropped++
}

func (m *MockMetrics) IncReconnects() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reconnects++
}

func (m *MockMetrics) SetConnectionState(state int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.States = append(m.States, state)
}

func (m *MockMetrics) ReconnectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Reconnects
}

func (m *MockMetrics) FramesDroppedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FramesDropped
}

// MockCompressor passes data through unchanged unless overridden.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	return val, nil
}

func (m *MockCompressor) Close() {}

// MockFileManager implements alerthist.FileManagerInterface.
type MockFileManager struct {
	mu        sync.Mutex
	SaveCalls []string
	LoadCalls []string
	SaveErr   error
	LoadErr   error
}

func (m *MockFileManager) SaveToFile(fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, fileName)
	return m.SaveErr
}

func (m *MockFileManager) LoadFromFile(fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = append(m.LoadCalls, fileName)
	return m.LoadErr
}

func (m *MockFileManager) Close() {}

func (m *MockFileManager) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}

// MockPermission implements notify.PermissionProvider with a fixed status.
type MockPermission struct {
	Granted bool
}

func (m *MockPermission) Request(_ context.Context) (bool, error) {
	return m.Granted, nil
}

func (m *MockPermission) Status() notify.PermissionStatus {
	if m.Granted {
		return notify.Authorized
	}
	return notify.Denied
}

// MockCenter records delivered notification requests.
type MockCenter struct {
	mu        sync.Mutex
	Delivered []notify.Request
	Err       error
}

func (m *MockCenter) Deliver(req notify.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Delivered = append(m.Delivered, req)
	return m.Err
}

func (m *MockCenter) Requests() []notify.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notify.Request, len(m.Delivered))
	copy(out, m.Delivered)
	return out
}
