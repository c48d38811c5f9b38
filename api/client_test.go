package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, staticTokens(token))
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing content type")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"status":1,
			"user":{"id":"42","username":"tester","nickname":"Tester"},
			"token":"jwt-abc"}}`))
	}, "")

	resp, err := client.Login(context.Background(), &models.LoginRequest{Username: "tester", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.ID != "42" || resp.Token != "jwt-abc" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

// HTTP 200 ama status != 1 — backend'in "yanlış şifre" kontratı.
func TestLoginRejectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"status":0}}`))
	}, "")

	_, err := client.Login(context.Background(), &models.LoginRequest{Username: "tester", Password: "wrong"})
	if !errors.Is(err, pkg.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}, "")

	_, err := client.Login(context.Background(), &models.LoginRequest{Username: "", Password: ""})
	if !errors.Is(err, pkg.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if called {
		t.Fatal("invalid request must not reach the network")
	}
}

func TestBearerTokenAttached(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"friends":[],"incoming":[],"outgoing":[]}}`))
	}, "tok-1")

	if _, err := client.ListFriends(context.Background()); err != nil {
		t.Fatalf("list friends: %v", err)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, pkg.ErrUnauthenticated},
		{http.StatusForbidden, pkg.ErrForbidden},
		{http.StatusNotFound, pkg.ErrNotFound},
		{http.StatusTooManyRequests, pkg.ErrRateLimited},
		{http.StatusInternalServerError, pkg.ErrTransport},
	}
	for _, c := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte(`{"success":false,"error":"nope"}`))
		}, "")

		_, err := client.ListFriends(context.Background())
		if !errors.Is(err, c.want) {
			t.Fatalf("status %d: expected %v, got %v", c.status, c.want, err)
		}
	}
}

// Gateway'in HTML döndürdüğü non-2xx yanıt yine status'tan map'lenir.
func TestNonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>404</html>"))
	}, "")

	_, err := client.ListFriends(context.Background())
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}, "")

	_, err := client.ListFriends(context.Background())
	if !errors.Is(err, pkg.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestReactionVerbsHitDistinctRoutes(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"like_count":1,"dislike_count":0,"user_reaction":"like"}}`))
	}, "tok")

	ctx := context.Background()
	if _, err := client.InsertReaction(ctx, "p1", models.ReactionLike); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := client.UpdateReaction(ctx, "p1", models.ReactionDislike); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := client.DeleteReaction(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{
		"POST /api/reaction/insert",
		"PUT /api/reaction/update",
		"DELETE /api/reaction/delete",
	}
	if len(seen) != len(want) {
		t.Fatalf("routes %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("routes %v, want %v", seen, want)
		}
	}
}
