package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite stores entries in a local SQLite file.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer
	conn.SetMaxOpenConns(1)

	s := &SQLite{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS site_state_entries (
		owner TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (owner, key)
	)`)
	return err
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}

func (s *SQLite) GetAll(ctx context.Context, owner string) (map[string]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT key, value FROM site_state_entries WHERE owner = ?`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *SQLite) SetMany(ctx context.Context, owner string, values map[string]string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO site_state_entries (owner, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (owner, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for k, v := range values {
		if v == "" {
			if _, err := tx.ExecContext(ctx, `DELETE FROM site_state_entries WHERE owner = ? AND key = ?`, owner, k); err != nil {
				return fmt.Errorf("delete %s: %w", k, err)
			}
			continue
		}
		if _, err := stmt.ExecContext(ctx, owner, k, v, now); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return tx.Commit()
}
