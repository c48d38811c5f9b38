package session

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neighbus/neighbus/database"
	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
)

func newTestKV(t *testing.T) database.KVStore {
	t.Helper()
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return database.NewKVStore(db)
}

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "42"}
	if exp != nil {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestEstablishRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	exp := time.Now().Add(time.Hour)
	original := models.Session{
		UserID:    "42",
		Username:  "tester",
		Nickname:  "Tester",
		AuthToken: signedToken(t, &exp),
	}

	m1, err := NewManager(ctx, kv, "passphrase")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m1.Establish(ctx, original); err != nil {
		t.Fatalf("establish: %v", err)
	}

	// Yeni process'i simüle et: aynı store, taze manager
	m2, err := NewManager(ctx, kv, "passphrase")
	if err != nil {
		t.Fatalf("second manager: %v", err)
	}
	restored, err := m2.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored {
		t.Fatal("expected session restored")
	}

	got, ok := m2.Current()
	if !ok || got != original {
		t.Fatalf("restored session mismatch: got %+v, want %+v", got, original)
	}
	if m2.Token() != original.AuthToken {
		t.Fatalf("token source mismatch: %q", m2.Token())
	}
}

func TestRestoreDiscardsExpiredToken(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	exp := time.Now().Add(-time.Hour)
	m1, err := NewManager(ctx, kv, "passphrase")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m1.Establish(ctx, models.Session{
		UserID: "42", Username: "tester", AuthToken: signedToken(t, &exp),
	}); err != nil {
		t.Fatalf("establish: %v", err)
	}

	m2, err := NewManager(ctx, kv, "passphrase")
	if err != nil {
		t.Fatalf("second manager: %v", err)
	}
	restored, err := m2.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored {
		t.Fatal("expired session must not restore")
	}
	if _, ok := m2.Current(); ok {
		t.Fatal("no current session expected")
	}

	// Stale kayıt silinmiş olmalı
	if _, err := kv.Get(ctx, "session"); !errors.Is(err, database.ErrKeyNotFound) {
		t.Fatalf("expected stale record deleted, got %v", err)
	}
}

func TestRestoreKeepsNonExpiringToken(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	m1, err := NewManager(ctx, kv, "passphrase")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m1.Establish(ctx, models.Session{
		UserID: "42", Username: "tester", AuthToken: signedToken(t, nil),
	}); err != nil {
		t.Fatalf("establish: %v", err)
	}

	m2, err := NewManager(ctx, kv, "passphrase")
	if err != nil {
		t.Fatalf("second manager: %v", err)
	}
	restored, err := m2.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored {
		t.Fatal("token without exp claim must restore")
	}
}

// Passphrase değişince eski kayıt çözülemez — restore sessizce temizler.
func TestRestoreDiscardsUndecryptableRecord(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	exp := time.Now().Add(time.Hour)
	m1, err := NewManager(ctx, kv, "old-passphrase")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m1.Establish(ctx, models.Session{
		UserID: "42", Username: "tester", AuthToken: signedToken(t, &exp),
	}); err != nil {
		t.Fatalf("establish: %v", err)
	}

	m2, err := NewManager(ctx, kv, "new-passphrase")
	if err != nil {
		t.Fatalf("second manager: %v", err)
	}
	restored, err := m2.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored {
		t.Fatal("undecryptable session must not restore")
	}
}

func TestRequireWithoutSession(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(ctx, newTestKV(t), "passphrase")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	if _, err := m.Require(); !errors.Is(err, pkg.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if m.Token() != "" {
		t.Fatalf("expected empty token, got %q", m.Token())
	}
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	m, err := NewManager(ctx, kv, "passphrase")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	exp := time.Now().Add(time.Hour)
	if err := m.Establish(ctx, models.Session{
		UserID: "42", Username: "tester", AuthToken: signedToken(t, &exp),
	}); err != nil {
		t.Fatalf("establish: %v", err)
	}

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Fatal("session must be gone after clear")
	}
}
