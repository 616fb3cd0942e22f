package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "folio.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "folio.db")
	db, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestViews_HitAndGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	n, err := db.GetView(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	for want := int64(1); want <= 3; want++ {
		n, err = db.HitView(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	_, err = db.HitView(ctx, "other")
	require.NoError(t, err)

	n, err = db.GetView(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	top, err := db.TopPosts(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []PostViews{{"hello", 3}, {"other", 1}}, top)
}

func TestVisitors_StatsAndCleanup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now.Add(-400 * 24 * time.Hour) }
	require.NoError(t, db.RecordVisit(ctx, HashIP("1.1.1.1", "salt"), "old", "/"))

	db.now = func() time.Time { return now.Add(-3 * 24 * time.Hour) }
	require.NoError(t, db.RecordVisit(ctx, HashIP("2.2.2.2", "salt"), "ua", "/blog"))

	db.now = func() time.Time { return now }
	require.NoError(t, db.RecordVisit(ctx, HashIP("2.2.2.2", "salt"), "ua", "/"))
	_, err := db.HitView(ctx, "hello")
	require.NoError(t, err)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalVisitors)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	assert.Equal(t, int64(1), stats.VisitorsToday)
	assert.Equal(t, int64(2), stats.VisitorsThisWeek)
	assert.Equal(t, int64(1), stats.TotalPostViews)
	require.Len(t, stats.RecentVisitors, 3)
	assert.Equal(t, "/", stats.RecentVisitors[0].Path)
	assert.True(t, now.Equal(stats.RecentVisitors[0].Timestamp))

	removed, err := db.CleanupVisitors(ctx, VisitorRetention)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestHashIP(t *testing.T) {
	a := HashIP("10.0.0.1", "s1")
	assert.Len(t, a, 16)
	assert.Equal(t, a, HashIP("10.0.0.1", "s1"))
	assert.NotEqual(t, a, HashIP("10.0.0.1", "s2"))
	assert.NotContains(t, a, "10.0.0.1")
}
