// Package api — friend endpoint'leri.
//
// Route'lar:
//
//	GET  /api/friend/list    → ListFriends (arkadaşlar + gelen/giden istekler)
//	POST /api/friend/request → SendFriendRequest
//	POST /api/friend/accept  → AcceptFriendRequest
//	POST /api/friend/refuse  → RefuseFriendRequest
//	POST /api/friend/delete  → DeleteFriend
//
// Mutasyon çağrıları sadece başarı/hata döner — güncel roster, friends
// paketinin mutasyon sonrası yaptığı full refetch ile alınır.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
)

// ListFriends, tüm roster'ı döner.
func (c *Client) ListFriends(ctx context.Context) (*models.Roster, error) {
	var roster models.Roster
	if err := c.do(ctx, http.MethodGet, "/api/friend/list", nil, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

// SendFriendRequest, username'e arkadaşlık isteği gönderir.
// Boş hedef yerel olarak reddedilir — network çağrısı yapılmaz.
func (c *Client) SendFriendRequest(ctx context.Context, req *models.SendFriendRequestRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrValidation, err.Error())
	}
	return c.do(ctx, http.MethodPost, "/api/friend/request", req, nil)
}

// requestRef, accept/refuse/delete çağrılarının ortak payload'ı.
type requestRef struct {
	ID string `json:"id"`
}

// AcceptFriendRequest, gelen isteği kabul eder.
func (c *Client) AcceptFriendRequest(ctx context.Context, requestID string) error {
	return c.do(ctx, http.MethodPost, "/api/friend/accept", &requestRef{ID: requestID}, nil)
}

// RefuseFriendRequest, gelen isteği reddeder.
func (c *Client) RefuseFriendRequest(ctx context.Context, requestID string) error {
	return c.do(ctx, http.MethodPost, "/api/friend/refuse", &requestRef{ID: requestID}, nil)
}

// DeleteFriend, mevcut arkadaşlığı siler.
func (c *Client) DeleteFriend(ctx context.Context, friendshipID string) error {
	return c.do(ctx, http.MethodPost, "/api/friend/delete", &requestRef{ID: friendshipID}, nil)
}
