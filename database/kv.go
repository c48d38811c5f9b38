// Package database — KVStore: tekil client durumu için key-value erişimi.
//
// Mobil uygulamalardaki "on-device key-value storage" karşılığıdır.
// Oturum kaydı (şifrelenmiş) ve scrypt salt'ı burada tutulur.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrKeyNotFound, istenen key store'da yoksa döner.
var ErrKeyNotFound = errors.New("key not found")

// KVStore, key-value erişim interface'i.
// Consumer'lar (session manager) concrete struct'a değil bu interface'e
// bağımlıdır — testlerde in-memory fake ile değiştirilebilir.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// sqliteKVStore, KVStore'un SQLite implementasyonu.
type sqliteKVStore struct {
	db *sql.DB
}

// NewKVStore, constructor — interface döner.
func NewKVStore(db *DB) KVStore {
	return &sqliteKVStore{db: db.Conn}
}

// Get, key'e karşılık gelen değeri okur.
// Key yoksa ErrKeyNotFound döner — çağıran errors.Is ile ayırt eder.
func (s *sqliteKVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, nil
}

// Set, key'i yazar veya günceller (upsert).
func (s *sqliteKVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Delete, key'i siler. Key yoksa hata DEĞİLDİR (idempotent).
func (s *sqliteKVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}
