// Package api — club (kulüp) endpoint'leri.
//
// Route'lar:
//
//	GET  /api/club/list       → ListClubs
//	POST /api/club/{id}/join  → JoinClub
//	POST /api/club/{id}/leave → LeaveClub
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/neighbus/neighbus/models"
)

// ListClubs, mahalledeki kulüpleri döner; IsMember alanı oturuma göre doludur.
func (c *Client) ListClubs(ctx context.Context) ([]models.Club, error) {
	var clubs []models.Club
	if err := c.do(ctx, http.MethodGet, "/api/club/list", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// JoinClub, kulübe üyelik başlatır.
func (c *Client) JoinClub(ctx context.Context, clubID string) error {
	return c.do(ctx, http.MethodPost, "/api/club/"+url.PathEscape(clubID)+"/join", nil, nil)
}

// LeaveClub, kulüp üyeliğini sonlandırır.
func (c *Client) LeaveClub(ctx context.Context, clubID string) error {
	return c.do(ctx, http.MethodPost, "/api/club/"+url.PathEscape(clubID)+"/leave", nil, nil)
}
