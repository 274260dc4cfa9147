package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	applied, err := db.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	states, err := db.MigrationStatus(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, states)
	for _, s := range states {
		assert.True(t, s.Applied, "migration %d should be applied", s.Version)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever", Options{})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrate_StrictTableKeepsRows(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:", Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	p, err := db.provider()
	require.NoError(t, err)
	_, err = p.UpTo(ctx, 1)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO usuarios (username, password, puntos) VALUES ('ana', 'hash', 42)")
	require.NoError(t, err)

	_, err = db.Migrate(ctx)
	require.NoError(t, err)

	user, err := NewUserRepository(db).FindByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.Score)

	var sql string
	require.NoError(t, db.GetContext(ctx, &sql, "SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'usuarios'"))
	assert.Contains(t, sql, "STRICT")
}
