package testutil

import (
	"os"
	"sync"
	"time"

	"stagehand/internal/models"
	"stagehand/internal/providers"
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

// CountByLevel returns how many entries were recorded at the given level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockPersistence implements services.PersistenceInterface and records every
// saved document.
type MockPersistence struct {
	mu       sync.Mutex
	LoadDoc  *models.Document
	LoadErr  error
	SaveErr  error
	SaveCnt  int
	LastSave *models.Document
}

func (m *MockPersistence) Load() (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadDoc == nil {
		return models.DefaultDocument(), m.LoadErr
	}
	return m.LoadDoc, m.LoadErr
}

func (m *MockPersistence) Save(doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCnt++
	m.LastSave = doc.Clone()
	return m.SaveErr
}

func (m *MockPersistence) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCnt
}

// MockBroadcaster implements services.BroadcasterInterface and records every
// broadcast document and emitted event.
type MockBroadcaster struct {
	mu        sync.Mutex
	Documents []*models.Document
	Events    []EmittedEvent
}

type EmittedEvent struct {
	Event   string
	Payload interface{}
}

func (m *MockBroadcaster) BroadcastDocument(doc *models.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Documents = append(m.Documents, doc)
}

func (m *MockBroadcaster) Emit(event string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, EmittedEvent{Event: event, Payload: payload})
}

func (m *MockBroadcaster) BroadcastCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Documents)
}

func (m *MockBroadcaster) LastDocument() *models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Documents) == 0 {
		return nil
	}
	return m.Documents[len(m.Documents)-1]
}

func (m *MockBroadcaster) EventNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.Events))
	for i, e := range m.Events {
		names[i] = e.Event
	}
	return names
}

// MockArchiver implements services.ArchiverInterface.
type MockArchiver struct {
	mu     sync.Mutex
	Parked []*models.GlobalScene
}

func (m *MockArchiver) Park(scene *models.GlobalScene) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Parked = append(m.Parked, scene)
}

func (m *MockArchiver) Restore(id string) (*models.GlobalScene, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.Parked {
		if s.ID == id {
			m.Parked = append(m.Parked[:i], m.Parked[i+1:]...)
			return s, nil
		}
	}
	return nil, os.ErrNotExist
}

func (m *MockArchiver) ParkedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Parked)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	RequestsTotal  int
	EventsTotal    map[string]int
	CacheHitCnt    int
	CacheMissCnt   int
	ClientsCurrent int
	BroadcastSizes []int
	PersistObs     int
	ChatsGauge     int
	ScenesGauge    int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsTotal++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncEventsTotal(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EventsTotal == nil {
		m.EventsTotal = make(map[string]int)
	}
	m.EventsTotal[event]++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHitCnt++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMissCnt++
}

func (m *MockMetrics) IncConnectedClients() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClientsCurrent++
}

func (m *MockMetrics) DecConnectedClients() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClientsCurrent--
}

func (m *MockMetrics) ObserveBroadcastSize(bytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BroadcastSizes = append(m.BroadcastSizes, bytes)
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistObs++
}

func (m *MockMetrics) SetChatsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatsGauge = count
}

func (m *MockMetrics) SetScenesTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScenesGauge = count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
