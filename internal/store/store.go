// Package store holds identity records and performance ledgers behind a
// small interface so the backing storage can change without touching callers.
package store

import (
	"context"
	"errors"

	"github.com/isdelr/lexilearn-be/internal/models"
)

var (
	// ErrNotFound is returned when no identity matches the lookup key.
	ErrNotFound = errors.New("identity not found")
	// ErrConflict is returned when a username is already taken.
	ErrConflict = errors.New("username already exists")
)

// IdentityStore persists identity records keyed by username and id.
type IdentityStore interface {
	CreateIdentity(ctx context.Context, identity models.Identity) error
	GetIdentityByUsername(ctx context.Context, username string) (models.Identity, error)
	GetIdentityByID(ctx context.Context, id string) (models.Identity, error)
	UpdatePreferences(ctx context.Context, id string, patch models.PreferencesPatch) (models.Identity, error)
}

// LedgerStore persists append-only performance records.
type LedgerStore interface {
	AppendRecord(ctx context.Context, record models.PerformanceRecord) error
	ListRecords(ctx context.Context, identityID string) ([]models.PerformanceRecord, error)
	ListAllRecords(ctx context.Context) ([]models.PerformanceRecord, error)
}

// Store is the full storage surface used by the services.
type Store interface {
	IdentityStore
	LedgerStore
	Close() error
}

func applyPatch(prefs *models.Preferences, patch models.PreferencesPatch) {
	if patch.PreferredTopics != nil {
		prefs.PreferredTopics = append([]string{}, (*patch.PreferredTopics)...)
	}
	if patch.DifficultyLevel != nil {
		prefs.DifficultyLevel = *patch.DifficultyLevel
	}
}
