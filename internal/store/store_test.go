package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/database"
	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func sampleAnalysis(id string) *models.StoredAnalysis {
	return &models.StoredAnalysis{
		ID:     id,
		Scores: models.Scores{Founder: 88, Market: 95, Business: 94, Risk: 80, Overall: 90},
		Memo: &models.Memo{
			ExecutiveSummary: models.ExecutiveSummary{Company: "Uber", Recommendation: models.ActionInvest, OverallScore: 90},
			NextSteps:        []string{"Prepare term sheet"},
		},
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Confidence: models.Confidence{Overall: 83},
	}
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(database.NewRedisFromClient(client), "analysis:", ttl), mr
}

// ==========================
// Memory Store Tests
// ==========================

func TestMemoryStore_PutGetCount(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, sampleAnalysis("analysis_1")))
	require.NoError(t, s.Put(ctx, sampleAnalysis("analysis_2")))

	got, err := s.Get(ctx, "analysis_1")
	require.NoError(t, err)
	assert.Equal(t, 90, got.Scores.Overall)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "missing")
	assert.Equal(t, errors.ErrCodeAnalysisNotFound, errors.CodeOf(err))
}

// ==========================
// Redis Store Tests
// ==========================

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	want := sampleAnalysis("analysis_abc")
	require.NoError(t, s.Put(ctx, want))

	assert.True(t, mr.Exists("analysis:analysis_abc"))
	assert.Equal(t, time.Hour, mr.TTL("analysis:analysis_abc"))

	got, err := s.Get(ctx, "analysis_abc")
	require.NoError(t, err)
	assert.Equal(t, want.Scores, got.Scores)
	assert.Equal(t, want.Memo.ExecutiveSummary, got.Memo.ExecutiveSummary)
	assert.True(t, want.Timestamp.Equal(got.Timestamp))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedisStore_GetUnknown(t *testing.T) {
	s, _ := newRedisStore(t, 0)

	_, err := s.Get(context.Background(), "missing")
	assert.Equal(t, errors.ErrCodeAnalysisNotFound, errors.CodeOf(err))
}

func TestRedisStore_ReadFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(database.NewRedisFromClient(db), "analysis:", 0)

	mock.ExpectGet("analysis:x").SetErr(stderrors.New("connection reset"))
	mock.ExpectSCard("analysis:ids").SetErr(stderrors.New("connection reset"))

	_, err := s.Get(context.Background(), "x")
	assert.Equal(t, errors.ErrCodeStoreReadFailed, errors.CodeOf(err))

	_, err = s.Count(context.Background())
	assert.Equal(t, errors.ErrCodeStoreReadFailed, errors.CodeOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Postgres Store Tests
// ==========================

func TestPostgresStore_Put(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	analysis := sampleAnalysis("analysis_pg")
	mock.ExpectExec(`INSERT INTO analyses`).
		WithArgs("analysis_pg", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), analysis.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s := NewPostgresStore(database.NewPostgresFromDB(db))
	require.NoError(t, s.Put(context.Background(), analysis))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PutFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO analyses`).WillReturnError(stderrors.New("disk full"))

	s := NewPostgresStore(database.NewPostgresFromDB(db))
	err = s.Put(context.Background(), sampleAnalysis("analysis_pg"))
	assert.Equal(t, errors.ErrCodeStoreWriteFailed, errors.CodeOf(err))
	assert.True(t, errors.IsRetryableErrorCode(errors.CodeOf(err)))
}

func TestPostgresStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	want := sampleAnalysis("analysis_pg")
	scoresJSON, _ := json.Marshal(want.Scores)
	memoJSON, _ := json.Marshal(want.Memo)
	confidenceJSON, _ := json.Marshal(want.Confidence)

	mock.ExpectQuery(`SELECT scores, memo, confidence, created_at`).
		WithArgs("analysis_pg").
		WillReturnRows(sqlmock.NewRows([]string{"scores", "memo", "confidence", "created_at"}).
			AddRow(scoresJSON, memoJSON, confidenceJSON, want.Timestamp))

	s := NewPostgresStore(database.NewPostgresFromDB(db))
	got, err := s.Get(context.Background(), "analysis_pg")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT scores, memo, confidence, created_at`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"scores", "memo", "confidence", "created_at"}))

	s := NewPostgresStore(database.NewPostgresFromDB(db))
	_, err = s.Get(context.Background(), "missing")
	assert.Equal(t, errors.ErrCodeAnalysisNotFound, errors.CodeOf(err))
}

func TestPostgresStore_CountAndSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS analyses`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM analyses`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	s := NewPostgresStore(database.NewPostgresFromDB(db))
	require.NoError(t, s.EnsureSchema(context.Background()))

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Factory Tests
// ==========================

func TestNew_Backends(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	tests := []struct {
		name    string
		cfg     *config.Config
		want    interface{}
		wantErr bool
	}{
		{"default is memory", &config.Config{}, &MemoryStore{}, false},
		{"redis", &config.Config{
			Store:    config.StoreConfig{Backend: BackendRedis, KeyPrefix: "analysis:"},
			Database: config.DatabaseConfig{Redis: config.RedisConfig{Address: mr.Addr()}},
		}, &RedisStore{}, false},
		{"unknown", &config.Config{Store: config.StoreConfig{Backend: "etcd"}}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, closeFn, err := New(context.Background(), tt.cfg, logger.NewTestLogger(t))
			defer func() { _ = closeFn() }()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}
