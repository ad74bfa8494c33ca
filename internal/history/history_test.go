package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_EmptyLast(t *testing.T) {
	j := openTempJournal(t)

	_, ok, err := j.Last(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournal_RecordAndQuery(t *testing.T) {
	ctx := context.Background()
	j := openTempJournal(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.Record(ctx, "acme", "default_config", base))
	require.NoError(t, j.Record(ctx, "beta", "staging", base.Add(time.Minute)))
	require.NoError(t, j.Record(ctx, "acme", "staging", base.Add(2*time.Minute)))

	last, ok, err := j.Last(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "acme", last.Account)
	assert.Equal(t, "staging", last.Config)
	assert.True(t, last.ActivatedAt.Equal(base.Add(2*time.Minute)))

	recent, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "acme", recent[0].Account)
	assert.Equal(t, "beta", recent[1].Account)

	all, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)

	j, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, "acme", "default_config", time.Now()))
	require.NoError(t, j.Close())

	j, err = Open(ctx, path)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
