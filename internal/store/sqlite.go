package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/lexilearn-be/internal/models"
)

// SQLStore persists identities and ledgers in SQLite.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an already migrated database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// CreateIdentity inserts a new identity row.
func (s *SQLStore) CreateIdentity(ctx context.Context, identity models.Identity) error {
	topics, err := json.Marshal(nonNil(identity.PreferredTopics))
	if err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}
	createdAt := identity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO identities (id, username, password_hash, preferred_topics_json, difficulty_level, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		identity.ID, identity.Username, identity.PasswordHash, string(topics), identity.DifficultyLevel, createdAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// GetIdentityByUsername retrieves a single identity by username, including the password hash.
func (s *SQLStore) GetIdentityByUsername(ctx context.Context, username string) (models.Identity, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, preferred_topics_json, difficulty_level, created_at FROM identities WHERE username = ?", username)
	return scanIdentity(row)
}

// GetIdentityByID retrieves a single identity by id.
func (s *SQLStore) GetIdentityByID(ctx context.Context, id string) (models.Identity, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, preferred_topics_json, difficulty_level, created_at FROM identities WHERE id = ?", id)
	return scanIdentity(row)
}

// UpdatePreferences applies the patch inside a transaction so concurrent
// partial updates do not clobber each other's fields.
func (s *SQLStore) UpdatePreferences(ctx context.Context, id string, patch models.PreferencesPatch) (models.Identity, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Identity{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		"SELECT id, username, password_hash, preferred_topics_json, difficulty_level, created_at FROM identities WHERE id = ?", id)
	identity, err := scanIdentity(row)
	if err != nil {
		return models.Identity{}, err
	}

	applyPatch(&identity.Preferences, patch)
	topics, err := json.Marshal(nonNil(identity.PreferredTopics))
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to encode topics: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE identities SET preferred_topics_json = ?, difficulty_level = ? WHERE id = ?",
		string(topics), identity.DifficultyLevel, id); err != nil {
		return models.Identity{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// AppendRecord inserts a record; the autoincrement key preserves insertion order.
func (s *SQLStore) AppendRecord(ctx context.Context, record models.PerformanceRecord) error {
	metrics, err := json.Marshal(record.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO performance_records (identity_id, activity, metrics_json, recorded_at) VALUES (?, ?, ?, ?)",
		record.IdentityID, record.Activity, string(metrics), record.Timestamp.UTC())
	return err
}

// ListRecords returns an identity's ledger in insertion order.
func (s *SQLStore) ListRecords(ctx context.Context, identityID string) ([]models.PerformanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT identity_id, activity, metrics_json, recorded_at FROM performance_records WHERE identity_id = ? ORDER BY seq", identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListAllRecords returns every record across all identities.
func (s *SQLStore) ListAllRecords(ctx context.Context) ([]models.PerformanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT identity_id, activity, metrics_json, recorded_at FROM performance_records ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// scanIdentity is a helper function to scan a single row into an Identity struct.
func scanIdentity(scanner interface{ Scan(...any) error }) (models.Identity, error) {
	var identity models.Identity
	var topicsJSON string
	err := scanner.Scan(
		&identity.ID,
		&identity.Username,
		&identity.PasswordHash,
		&topicsJSON,
		&identity.DifficultyLevel,
		&identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, ErrNotFound
		}
		return models.Identity{}, err
	}
	if err := json.Unmarshal([]byte(topicsJSON), &identity.PreferredTopics); err != nil {
		return models.Identity{}, fmt.Errorf("failed to decode topics for %s: %w", identity.ID, err)
	}
	return identity, nil
}

// scanRecords is a helper function to scan multiple rows into a slice of records.
func scanRecords(rows *sql.Rows) ([]models.PerformanceRecord, error) {
	var records []models.PerformanceRecord
	for rows.Next() {
		var record models.PerformanceRecord
		var metricsJSON string
		if err := rows.Scan(&record.IdentityID, &record.Activity, &metricsJSON, &record.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(metricsJSON), &record.Metrics); err != nil {
			return nil, fmt.Errorf("failed to decode metrics: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
