package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLStore persists values in the kv_sessions table created by db.Open.
type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv_sessions WHERE k=$1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, val []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_sessions (k, v, updated_at) VALUES ($1,$2,$3)
		 ON CONFLICT (k) DO UPDATE SET v=excluded.v, updated_at=excluded.updated_at`,
		key, val, time.Now().Unix())
	return err
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_sessions WHERE k=$1`, key)
	return err
}
