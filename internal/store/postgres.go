// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"startup-analyst/internal/common/database"
	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS analyses (
		id          TEXT PRIMARY KEY,
		scores      JSONB NOT NULL,
		memo        JSONB NOT NULL,
		confidence  JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)`

type PostgresStore struct {
	db *database.PostgresClient
}

func NewPostgresStore(db *database.PostgresClient) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create analyses table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, analysis *models.StoredAnalysis) error {
	scoresJSON, err := json.Marshal(analysis.Scores)
	if err != nil {
		return errors.NewStoreWriteFailedError(analysis.ID, err)
	}
	memoJSON, err := json.Marshal(analysis.Memo)
	if err != nil {
		return errors.NewStoreWriteFailedError(analysis.ID, err)
	}
	confidenceJSON, err := json.Marshal(analysis.Confidence)
	if err != nil {
		return errors.NewStoreWriteFailedError(analysis.ID, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO analyses (id, scores, memo, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET scores = EXCLUDED.scores, memo = EXCLUDED.memo,
		    confidence = EXCLUDED.confidence, created_at = EXCLUDED.created_at`,
		analysis.ID,
		scoresJSON,
		memoJSON,
		confidenceJSON,
		analysis.Timestamp,
	)
	if err != nil {
		return errors.NewStoreWriteFailedError(analysis.ID, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.StoredAnalysis, error) {
	var scoresJSON, memoJSON, confidenceJSON []byte
	analysis := &models.StoredAnalysis{ID: id}

	err := s.db.QueryRow(ctx, `
		SELECT scores, memo, confidence, created_at
		FROM analyses
		WHERE id = $1`, id).Scan(&scoresJSON, &memoJSON, &confidenceJSON, &analysis.Timestamp)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewAnalysisNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewStoreReadFailedError(id, err)
	}

	if err := json.Unmarshal(scoresJSON, &analysis.Scores); err != nil {
		return nil, errors.NewStoreReadFailedError(id, err)
	}
	if err := json.Unmarshal(memoJSON, &analysis.Memo); err != nil {
		return nil, errors.NewStoreReadFailedError(id, err)
	}
	if err := json.Unmarshal(confidenceJSON, &analysis.Confidence); err != nil {
		return nil, errors.NewStoreReadFailedError(id, err)
	}
	return analysis, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, errors.NewStoreReadFailedError("*", err)
	}
	return n, nil
}
