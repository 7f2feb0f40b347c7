package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/lib/pq"
)

// KVRepository is the durable per-device key-value store. Each device sees
// only its own keys; values are opaque strings.
type KVRepository interface {
	Get(ctx context.Context, deviceID, key string) (string, bool, error)
	GetAll(ctx context.Context, deviceID string, keys []string) (map[string]string, error)
	// PutMany writes all entries atomically.
	PutMany(ctx context.Context, deviceID string, entries map[string]string) error
	Delete(ctx context.Context, deviceID, key string) error
	ListDevices(ctx context.Context) ([]string, error)
}

// Schema creates the device_kv table. Applied by `mindzy migrate`.
const Schema = `
CREATE TABLE IF NOT EXISTS device_kv (
	device_id  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (device_id, key)
)`

type kvRepository struct {
	db *sql.DB
}

func NewKVRepository(db *sql.DB) KVRepository {
	return &kvRepository{db: db}
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *kvRepository) Get(ctx context.Context, deviceID, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM device_kv WHERE device_id = $1 AND key = $2`, deviceID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *kvRepository) GetAll(ctx context.Context, deviceID string, keys []string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM device_kv WHERE device_id = $1 AND key = ANY($2)`,
		deviceID, pq.Array(keys),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r *kvRepository) PutMany(ctx context.Context, deviceID string, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO device_kv (device_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (device_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	// stable write order keeps lock acquisition predictable
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, q, deviceID, k, entries[k]); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (r *kvRepository) Delete(ctx context.Context, deviceID, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM device_kv WHERE device_id = $1 AND key = $2`, deviceID, key)
	return err
}

func (r *kvRepository) ListDevices(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT device_id FROM device_kv ORDER BY device_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
