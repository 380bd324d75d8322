package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"brdstudio/internal/domain"
)

// MemoryStore keeps records in-process. Used by tests and as a fallback
// when no database path is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	brds  map[string]domain.BRD
	chats map[string][]domain.ChatMessage
	order []string
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		brds:  make(map[string]domain.BRD),
		chats: make(map[string][]domain.ChatMessage),
	}
}

// ListBRDs returns BRDs ordered newest-first.
func (m *MemoryStore) ListBRDs() ([]domain.BRD, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BRD, 0, len(m.order))
	for _, id := range m.order {
		res = append(res, m.brds[id])
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

// GetBRD retrieves one BRD by id.
func (m *MemoryStore) GetBRD(id string) (domain.BRD, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.brds[id]
	return b, ok, nil
}

// CreateBRD assigns an id and timestamp and records the BRD.
func (m *MemoryStore) CreateBRD(b domain.BRD) (domain.BRD, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = uuid.NewString()
	b.Language = domain.ParseLanguage(string(b.Language))
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	m.brds[b.ID] = b
	m.order = append(m.order, b.ID)
	return b, nil
}

// UpdateContent replaces the document text of one BRD.
func (m *MemoryStore) UpdateContent(id, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.brds[id]
	if !ok {
		return nil
	}
	b.Content = content
	m.brds[id] = b
	return nil
}

// SetFinalDocPath records the uploaded final document location.
func (m *MemoryStore) SetFinalDocPath(id, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.brds[id]
	if !ok {
		return nil
	}
	b.FinalDocPath = path
	m.brds[id] = b
	return nil
}

// ListChat returns messages for a BRD oldest-first.
func (m *MemoryStore) ListChat(brdID string) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.chats[brdID]
	res := make([]domain.ChatMessage, len(msgs))
	copy(res, msgs)
	return res, nil
}

// AppendChat records one chat turn in arrival order.
func (m *MemoryStore) AppendChat(brdID string, role domain.ChatRole, content string) (domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		BRDID:     brdID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	m.chats[brdID] = append(m.chats[brdID], msg)
	return msg, nil
}

// SeedBRD inserts a BRD with caller-provided id and timestamp. Test helper.
func (m *MemoryStore) SeedBRD(b domain.BRD) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brds[b.ID] = b
	m.order = append(m.order, b.ID)
}
