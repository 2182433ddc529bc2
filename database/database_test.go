package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, os.DirFS("migrations"))
	require.NoError(t, err)
	defer db.Close()

	// Şema oluşmuş olmalı — temel tablolara yazılabilmeli
	_, err = db.Conn.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u1', 'a', 'a@b.co', 'h')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Conn.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Greater(t, count, 0, "applied migrations are recorded")
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, os.DirFS("migrations"))
	require.NoError(t, err)
	_, err = db.Conn.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u1', 'a', 'a@b.co', 'h')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Aynı dosya üzerinde ikinci açılış — migration'lar tekrar KOŞMAZ,
	// mevcut veri korunur
	db, err = New(dbPath, os.DirFS("migrations"))
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestForeignKeysEnforced(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, os.DirFS("migrations"))
	require.NoError(t, err)
	defer db.Close()

	// Olmayan kullanıcı/production için favori eklenemez — FK pragma açık
	_, err = db.Conn.Exec(`INSERT INTO favorites (user_id, production_id) VALUES ('ghost', 'ghost')`)
	assert.Error(t, err)
}

func TestWithTxCommitAndRollback(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, os.DirFS("migrations"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	// Commit yolu
	err = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO users (id, username, email, password_hash) VALUES ('u1', 'a', 'a@b.co', 'h')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)

	// Rollback yolu — fn hata dönerse yazma geri alınır
	boom := errors.New("boom")
	err = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, username, email, password_hash) VALUES ('u2', 'b', 'b@b.co', 'h')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, db.Conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count, "rolled back insert must not persist")
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, os.DirFS("migrations"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	assert.Panics(t, func() {
		_ = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO users (id, username, email, password_hash) VALUES ('u9', 'p', 'p@b.co', 'h')`)
			panic("unexpected")
		})
	})

	var count int
	require.NoError(t, db.Conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements(`
		CREATE TABLE a (x TEXT);
		INSERT INTO a VALUES ('semi;colon');
		INSERT INTO a VALUES ('it''s fine')
	`)

	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[1], "semi;colon", "semicolon inside a string literal must not split")
	assert.Contains(t, stmts[2], "it''s fine")
}
