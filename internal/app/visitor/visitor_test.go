package visitor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bushnoor/internal/app/kvstore"
)

func TestRecordPrependsNewestFirst(t *testing.T) {
	log := NewLog(kvstore.NewMemory())
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	log.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	require.NoError(t, log.Record(ctx, "Home"))
	require.NoError(t, log.Record(ctx, "Shop"))
	require.NoError(t, log.Record(ctx, "Virtual Try-On"))

	entries := log.Recent(ctx)
	require.Len(t, entries, 3)
	assert.Equal(t, "Virtual Try-On", entries[0].Page)
	assert.Equal(t, "Shop", entries[1].Page)
	assert.Equal(t, "Home", entries[2].Page)
}

func TestRecordTruncatesToMaxEntries(t *testing.T) {
	log := NewLog(kvstore.NewMemory())
	ctx := context.Background()

	for i := 0; i < MaxEntries+10; i++ {
		require.NoError(t, log.Record(ctx, fmt.Sprintf("page-%d", i)))
	}

	entries := log.Recent(ctx)
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, fmt.Sprintf("page-%d", MaxEntries+9), entries[0].Page, "newest survives")
	assert.Equal(t, "page-10", entries[MaxEntries-1].Page, "oldest ten were dropped")
}

func TestMalformedStoredLogStartsFresh(t *testing.T) {
	kv := kvstore.NewMemory()
	log := NewLog(kv)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, kvstore.VisitorLogsKey, "{broken"))

	assert.Empty(t, log.Recent(ctx))

	require.NoError(t, log.Record(ctx, "Home"))
	entries := log.Recent(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, "Home", entries[0].Page)
}

func TestRecentOnEmptyStore(t *testing.T) {
	log := NewLog(kvstore.NewMemory())
	assert.Empty(t, log.Recent(context.Background()))
}
