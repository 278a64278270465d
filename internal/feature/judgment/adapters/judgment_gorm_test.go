package adapters

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"aqariy_web/internal/feature/judgment/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&JudgmentModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func ptr(v float64) *float64 { return &v }

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewJudgmentRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewJudgmentRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestJudgmentGorm_SaveAndRecent(t *testing.T) {
	t.Parallel()

	repo := NewJudgmentRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entity.Record{Key: "FAIR_PRICE", City: "نابلس", ListedPrice: 1, CreatedAt: base}))
	require.NoError(t, repo.Save(ctx, entity.Record{
		Key:            "GOOD_DEAL",
		City:           "رام الله",
		ListedPrice:    120000,
		PredictedPrice: ptr(150000),
		RangeMin:       ptr(100000),
		RangeMax:       ptr(200000),
		CreatedAt:      base.Add(time.Hour),
	}))

	recs, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "GOOD_DEAL", recs[0].Key)
	assert.Len(t, recs[0].ID, 36)
	require.NotNil(t, recs[0].PredictedPrice)
	assert.Equal(t, 150000.0, *recs[0].PredictedPrice)
	assert.Equal(t, "رام الله", recs[0].City)
	assert.Equal(t, "FAIR_PRICE", recs[1].Key)
	assert.Nil(t, recs[1].RangeMin)

	limited, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestJudgmentGorm_SaveKeepsGivenID(t *testing.T) {
	t.Parallel()

	repo := NewJudgmentRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entity.Record{ID: "fixed-id", Key: "OVERPRICED", ListedPrice: 5}))
	recs, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "fixed-id", recs[0].ID)
	assert.False(t, recs[0].CreatedAt.IsZero())

	assert.Error(t, repo.Save(ctx, entity.Record{ID: "fixed-id", Key: "OVERPRICED", ListedPrice: 5}))
}

func TestJudgmentGorm_PurgeBefore(t *testing.T) {
	t.Parallel()

	repo := NewJudgmentRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Save(ctx, entity.Record{Key: "FAIR_PRICE", ListedPrice: 1, CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour)}))
	}

	n, err := repo.PurgeBefore(ctx, base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	recs, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestXLSXWriter_Write(t *testing.T) {
	t.Parallel()

	recs := []entity.Record{
		{ID: "a", Key: "GOOD_DEAL", City: "نابلس", ListedPrice: 120000, PredictedPrice: ptr(150000), CreatedAt: base},
		{ID: "b", Key: "OVERPRICED", ListedPrice: 300000, CreatedAt: base.Add(time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, XLSXWriter{}.Write(&buf, recs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, []string{"a", "2025-01-01 00:00:00", "GOOD_DEAL", "نابلس", "120000", "150000"}, rows[1][:6])
	assert.Equal(t, "OVERPRICED", rows[2][2])
}

func TestXLSXWriter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, XLSXWriter{}.Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
