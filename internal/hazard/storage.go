package hazard

import "sync"

// Record keys the store reads and writes.
const (
	KeyUsers       = "users"
	KeyHazards     = "hazards"
	KeyCurrentUser = "currentUser"
)

// Storage is the persistence capability the store is built on. Load reports
// found=false for keys that were never saved.
type Storage interface {
	Load(key string) (value []byte, found bool, err error)
	Save(key string, value []byte) error
}

// BatchStorage is implemented by storages that can persist several records
// atomically. The store prefers it when available.
type BatchStorage interface {
	Storage
	SaveRecords(records map[string][]byte) error
}

// MemoryStorage keeps records in process memory.
type MemoryStorage struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStorage) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStorage) SaveRecords(records map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range records {
		m.records[k] = append([]byte(nil), v...)
	}
	return nil
}
