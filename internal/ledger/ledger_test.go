package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	first := Run{
		ID:           uuid.NewString(),
		CreatedAt:    time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC),
		TeamID:       "123456789",
		MapCount:     3,
		TestsPassed:  true,
		ArchivePath:  "trabalho_servicos_cognitivos_123456789.zip",
		ArchiveBytes: 2048,
	}
	second := first
	second.ID = uuid.NewString()
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	second.TestsPassed = false

	require.NoError(t, l.Record(ctx, first))
	require.NoError(t, l.Record(ctx, second))

	runs, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second.ID, runs[0].ID, "newest first")
	assert.False(t, runs[0].TestsPassed)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.True(t, runs[1].TestsPassed)
	assert.Equal(t, first.CreatedAt, runs[1].CreatedAt)
	assert.Equal(t, int64(2048), runs[1].ArchiveBytes)
}

func TestRecent_Limit(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Record(ctx, Run{
			ID:        uuid.NewString(),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			TeamID:    "42",
		}))
	}

	runs, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRecord_DuplicateIDFails(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	run := Run{ID: "same", CreatedAt: time.Now(), TeamID: "42"}
	require.NoError(t, l.Record(ctx, run))
	assert.Error(t, l.Record(ctx, run))
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, l.Record(context.Background(), Run{ID: "a", CreatedAt: time.Now(), TeamID: "1"}))
	require.NoError(t, l.Close())

	l2, err := Open(dir)
	require.NoError(t, err)
	defer l2.Close()

	runs, err := l2.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
