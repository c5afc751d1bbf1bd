package store

import (
	"context"
	"maps"
	"sync"

	"github.com/isdelr/lexilearn-be/internal/models"
)

type identityEntry struct {
	mu       sync.Mutex
	identity models.Identity
}

type ledger struct {
	mu      sync.Mutex
	records []models.PerformanceRecord
}

// MemoryStore keeps everything in process memory. The map lock is held only
// for index lookups; each identity record and each ledger has its own mutex so
// unrelated users never serialize on one another.
type MemoryStore struct {
	mu         sync.RWMutex
	byUsername map[string]*identityEntry
	byID       map[string]*identityEntry
	ledgers    map[string]*ledger
	order      []string // identity ids in first-append order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUsername: make(map[string]*identityEntry),
		byID:       make(map[string]*identityEntry),
		ledgers:    make(map[string]*ledger),
	}
}

// CreateIdentity inserts a new identity, failing if the username is taken.
func (s *MemoryStore) CreateIdentity(_ context.Context, identity models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[identity.Username]; exists {
		return ErrConflict
	}
	identity.PreferredTopics = append([]string{}, identity.PreferredTopics...)
	entry := &identityEntry{identity: identity}
	s.byUsername[identity.Username] = entry
	s.byID[identity.ID] = entry
	return nil
}

// GetIdentityByUsername returns a copy of the identity registered under username.
func (s *MemoryStore) GetIdentityByUsername(_ context.Context, username string) (models.Identity, error) {
	s.mu.RLock()
	entry, ok := s.byUsername[username]
	s.mu.RUnlock()
	if !ok {
		return models.Identity{}, ErrNotFound
	}
	return entry.snapshot(), nil
}

// GetIdentityByID returns a copy of the identity with the given id.
func (s *MemoryStore) GetIdentityByID(_ context.Context, id string) (models.Identity, error) {
	s.mu.RLock()
	entry, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return models.Identity{}, ErrNotFound
	}
	return entry.snapshot(), nil
}

// UpdatePreferences applies the non-nil fields of patch to the identity.
func (s *MemoryStore) UpdatePreferences(_ context.Context, id string, patch models.PreferencesPatch) (models.Identity, error) {
	s.mu.RLock()
	entry, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return models.Identity{}, ErrNotFound
	}

	entry.mu.Lock()
	applyPatch(&entry.identity.Preferences, patch)
	entry.mu.Unlock()
	return entry.snapshot(), nil
}

// AppendRecord adds a record to the end of the identity's ledger, creating it if needed.
func (s *MemoryStore) AppendRecord(_ context.Context, record models.PerformanceRecord) error {
	l := s.ledgerFor(record.IdentityID)
	record.Metrics = maps.Clone(record.Metrics)

	l.mu.Lock()
	l.records = append(l.records, record)
	l.mu.Unlock()
	return nil
}

// ListRecords returns the identity's ledger in insertion order.
func (s *MemoryStore) ListRecords(_ context.Context, identityID string) ([]models.PerformanceRecord, error) {
	s.mu.RLock()
	l, ok := s.ledgers[identityID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return l.snapshot(), nil
}

// ListAllRecords returns every ledger concatenated, ledgers ordered by creation.
func (s *MemoryStore) ListAllRecords(_ context.Context) ([]models.PerformanceRecord, error) {
	s.mu.RLock()
	ledgers := make([]*ledger, 0, len(s.order))
	for _, id := range s.order {
		ledgers = append(ledgers, s.ledgers[id])
	}
	s.mu.RUnlock()

	var all []models.PerformanceRecord
	for _, l := range ledgers {
		all = append(all, l.snapshot()...)
	}
	return all, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) ledgerFor(identityID string) *ledger {
	s.mu.RLock()
	l, ok := s.ledgers[identityID]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok = s.ledgers[identityID]; !ok {
		l = &ledger{}
		s.ledgers[identityID] = l
		s.order = append(s.order, identityID)
	}
	return l
}

func (e *identityEntry) snapshot() models.Identity {
	e.mu.Lock()
	defer e.mu.Unlock()
	identity := e.identity
	identity.PreferredTopics = append([]string{}, e.identity.PreferredTopics...)
	return identity
}

func (l *ledger) snapshot() []models.PerformanceRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.PerformanceRecord(nil), l.records...)
}
