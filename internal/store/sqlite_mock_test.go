package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStore_CreateIdentity_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "unique violation", dbErr: errors.New("constraint failed: UNIQUE constraint failed: identities.username (2067)"), wantErr: ErrConflict},
		{name: "db down", dbErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO identities")).
				WillReturnError(tt.dbErr)

			s := NewSQLStore(db)
			err = s.CreateIdentity(context.Background(), newIdentity("id-1", "alice"))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotErrorIs(t, err, ErrConflict)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStore_UpdatePreferences_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "preferred_topics_json", "difficulty_level", "created_at"}).
		AddRow("id-1", "alice", "hash", `["reading_strategies"]`, "easy", newIdentity("id-1", "alice").CreatedAt)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username")).WithArgs("id-1").WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE identities SET")).
		WithArgs(`["reading_strategies"]`, "hard", "id-1").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	hard := models.DifficultyHard
	_, err = NewSQLStore(db).UpdatePreferences(context.Background(), "id-1", models.PreferencesPatch{DifficultyLevel: &hard})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ListRecords_BadMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"identity_id", "activity", "metrics_json", "recorded_at"}).
		AddRow("id-1", "quiz", "{not json", newIdentity("id-1", "alice").CreatedAt)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT identity_id, activity")).WithArgs("id-1").WillReturnRows(rows)

	_, err = NewSQLStore(db).ListRecords(context.Background(), "id-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
