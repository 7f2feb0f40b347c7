package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real postgres only when MINDZY_TEST_DATABASE_URL is set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("MINDZY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MINDZY_TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func TestKVRepository_Postgres(t *testing.T) {
	db := openTestDB(t)
	repo := NewKVRepository(db)
	ctx := context.Background()
	dev := "test-" + uuid.NewString()
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM device_kv WHERE device_id = $1`, dev) })

	require.NoError(t, repo.PutMany(ctx, dev, map[string]string{"app_coins": "150", "app_tasks": "[]"}))
	require.NoError(t, repo.PutMany(ctx, dev, map[string]string{"app_coins": "200"}))

	all, err := repo.GetAll(ctx, dev, []string{"app_coins", "app_tasks", "app_rewards"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"app_coins": "200", "app_tasks": "[]"}, all)

	require.NoError(t, repo.Delete(ctx, dev, "app_tasks"))
	_, ok, err := repo.Get(ctx, dev, "app_tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	devices, err := repo.ListDevices(ctx)
	require.NoError(t, err)
	assert.Contains(t, devices, dev)
}
