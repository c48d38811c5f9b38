package reaction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	insert  func() (*models.ReactionState, error)
	update  func() (*models.ReactionState, error)
	remove func() (*models.ReactionState, error)
}

func (f *fakeAPI) record(verb string) {
	f.mu.Lock()
	f.calls = append(f.calls, verb)
	f.mu.Unlock()
}

func (f *fakeAPI) InsertReaction(_ context.Context, _ string, _ models.ReactionKind) (*models.ReactionState, error) {
	f.record("insert")
	return f.insert()
}

func (f *fakeAPI) UpdateReaction(_ context.Context, _ string, _ models.ReactionKind) (*models.ReactionState, error) {
	f.record("update")
	return f.update()
}

func (f *fakeAPI) DeleteReaction(_ context.Context, _ string) (*models.ReactionState, error) {
	f.record("delete")
	return f.remove()
}

type fakeSessions struct {
	err error
}

func (f *fakeSessions) Require() (models.Session, error) {
	if f.err != nil {
		return models.Session{}, f.err
	}
	return models.Session{UserID: "42", Username: "testuser"}, nil
}

func okState(s models.ReactionState) func() (*models.ReactionState, error) {
	return func() (*models.ReactionState, error) { return &s, nil }
}

func failState(err error) func() (*models.ReactionState, error) {
	return func() (*models.ReactionState, error) { return nil, err }
}

func TestToggleFirstLikeUsesInsert(t *testing.T) {
	api := &fakeAPI{insert: okState(models.ReactionState{LikeCount: 1, UserReaction: models.ReactionLike})}
	s := NewSynchronizer(api, &fakeSessions{}, nil)
	defer s.Close()

	s.Seed("post-1", models.ReactionState{})
	if err := s.Toggle(context.Background(), "post-1", models.ReactionLike); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if len(api.calls) != 1 || api.calls[0] != "insert" {
		t.Fatalf("expected single insert call, got %v", api.calls)
	}
	got, _ := s.State("post-1")
	want := models.ReactionState{LikeCount: 1, UserReaction: models.ReactionLike}
	if got != want {
		t.Fatalf("state after commit: got %+v, want %+v", got, want)
	}
}

func TestToggleSwitchUsesUpdate(t *testing.T) {
	api := &fakeAPI{update: okState(models.ReactionState{LikeCount: 4, DislikeCount: 3, UserReaction: models.ReactionDislike})}
	s := NewSynchronizer(api, &fakeSessions{}, nil)
	defer s.Close()

	s.Seed("post-1", models.ReactionState{LikeCount: 5, DislikeCount: 2, UserReaction: models.ReactionLike})
	if err := s.Toggle(context.Background(), "post-1", models.ReactionDislike); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if len(api.calls) != 1 || api.calls[0] != "update" {
		t.Fatalf("expected single update call, got %v", api.calls)
	}
}

func TestToggleRetractionUsesDelete(t *testing.T) {
	api := &fakeAPI{remove: okState(models.ReactionState{LikeCount: 2, DislikeCount: 1})}
	s := NewSynchronizer(api, &fakeSessions{}, nil)
	defer s.Close()

	s.Seed("post-1", models.ReactionState{LikeCount: 3, DislikeCount: 1, UserReaction: models.ReactionLike})
	if err := s.Toggle(context.Background(), "post-1", models.ReactionLike); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if len(api.calls) != 1 || api.calls[0] != "delete" {
		t.Fatalf("expected single delete call, got %v", api.calls)
	}
	got, _ := s.State("post-1")
	if got.UserReaction != models.ReactionNone {
		t.Fatalf("expected reaction cleared, got %q", got.UserReaction)
	}
}

// Observer önce optimistic state'i, hata sonrasında snapshot'ı görmeli —
// rollback sayaçları bit-for-bit toggle öncesi değere döndürür.
func TestToggleRollbackOnFailure(t *testing.T) {
	seeded := models.ReactionState{LikeCount: 5, DislikeCount: 2, UserReaction: models.ReactionLike}
	api := &fakeAPI{update: failState(errors.New("boom"))}

	var observed []models.ReactionState
	s := NewSynchronizer(api, &fakeSessions{}, func(_ string, st models.ReactionState) {
		observed = append(observed, st)
	})
	defer s.Close()

	s.Seed("post-1", seeded)
	err := s.Toggle(context.Background(), "post-1", models.ReactionDislike)
	if err == nil {
		t.Fatal("expected error from toggle")
	}

	if len(observed) != 2 {
		t.Fatalf("expected optimistic + rollback notifications, got %d", len(observed))
	}
	optimistic := models.ReactionState{LikeCount: 4, DislikeCount: 3, UserReaction: models.ReactionDislike}
	if observed[0] != optimistic {
		t.Fatalf("optimistic state: got %+v, want %+v", observed[0], optimistic)
	}
	if observed[1] != seeded {
		t.Fatalf("rollback state: got %+v, want %+v", observed[1], seeded)
	}

	got, _ := s.State("post-1")
	if got != seeded {
		t.Fatalf("cache after rollback: got %+v, want %+v", got, seeded)
	}
}

func TestToggleWithoutSessionRejected(t *testing.T) {
	api := &fakeAPI{}
	s := NewSynchronizer(api, &fakeSessions{err: pkg.ErrUnauthenticated}, nil)
	defer s.Close()

	s.Seed("post-1", models.ReactionState{LikeCount: 1})
	err := s.Toggle(context.Background(), "post-1", models.ReactionLike)
	if !errors.Is(err, pkg.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("no network call expected, got %v", api.calls)
	}
	got, _ := s.State("post-1")
	if got.LikeCount != 1 {
		t.Fatalf("state must not change without session, got %+v", got)
	}
}

func TestToggleInvalidKindRejected(t *testing.T) {
	s := NewSynchronizer(&fakeAPI{}, &fakeSessions{}, nil)
	defer s.Close()

	err := s.Toggle(context.Background(), "post-1", models.ReactionKind("love"))
	if !errors.Is(err, pkg.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// Seed edilmemiş içerikte toggle sıfır state'ten başlar (ilk oy).
func TestToggleUnseededStartsFromZero(t *testing.T) {
	api := &fakeAPI{insert: okState(models.ReactionState{LikeCount: 1, UserReaction: models.ReactionLike})}
	s := NewSynchronizer(api, &fakeSessions{}, nil)
	defer s.Close()

	if err := s.Toggle(context.Background(), "post-9", models.ReactionLike); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if len(api.calls) != 1 || api.calls[0] != "insert" {
		t.Fatalf("expected insert for unseeded content, got %v", api.calls)
	}
}
