package database

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/neighbus/neighbus/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	migrations, err := fs.Sub(EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}
	db, err := New(filepath.Join(t.TempDir(), "test.db"), migrations)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testMessage(id, roomID string, sentAt time.Time) models.ChatMessage {
	return models.ChatMessage{
		ID: id, RoomID: roomID, SenderID: "42", SenderName: "Tester",
		Body: "msg " + id, SentAt: sentAt,
	}
}

func TestHistoryAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore(newTestDB(t))

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		msg := testMessage(fmt.Sprintf("m%d", i), "room-1", base.Add(time.Duration(i)*time.Minute))
		if err := store.Append(ctx, msg); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.Recent(ctx, "room-1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	// Eski → yeni sıra
	for i := 0; i < 3; i++ {
		if got[i].ID != fmt.Sprintf("m%d", i) {
			t.Fatalf("order wrong at %d: %+v", i, got[i])
		}
	}
}

func TestHistoryRecentHonorsLimit(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore(newTestDB(t))

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, testMessage(fmt.Sprintf("m%d", i), "room-1", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.Recent(ctx, "room-1", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	// Limit son N'i seçer, sıra yine eski → yeni
	if len(got) != 2 || got[0].ID != "m3" || got[1].ID != "m4" {
		t.Fatalf("expected last two messages, got %+v", got)
	}
}

// Aynı ID ikinci kez eklenirse sessiz no-op — broker echo senaryosu.
func TestHistoryAppendDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore(newTestDB(t))

	msg := testMessage("m1", "room-1", time.Now().UTC())
	if err := store.Append(ctx, msg); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := store.Append(ctx, msg); err != nil {
		t.Fatalf("duplicate append must not error: %v", err)
	}

	got, err := store.Recent(ctx, "room-1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected single message, got %d", len(got))
	}
}

func TestHistoryRoomsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore(newTestDB(t))

	now := time.Now().UTC()
	_ = store.Append(ctx, testMessage("a1", "room-a", now))
	_ = store.Append(ctx, testMessage("b1", "room-b", now))

	got, err := store.Recent(ctx, "room-a", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("room filter leaked: %+v", got)
	}
}

func TestHistoryClear(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore(newTestDB(t))

	_ = store.Append(ctx, testMessage("m1", "room-1", time.Now().UTC()))
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := store.Recent(ctx, "room-1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %d", len(got))
	}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(newTestDB(t))

	if err := kv.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v2" {
		t.Fatalf("expected upserted value, got %q", got)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete must be idempotent: %v", err)
	}
}
