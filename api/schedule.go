// Package api — schedule (buluşma takvimi) endpoint'leri.
//
// Route'lar:
//
//	GET  /api/schedule/list?club={id} → ListMeetings
//	POST /api/schedule/create         → CreateMeeting
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
)

// ListMeetings, kulübün yaklaşan buluşmalarını döner (yakın → uzak).
// clubID boşsa kullanıcının üye olduğu tüm kulüplerin buluşmaları gelir.
func (c *Client) ListMeetings(ctx context.Context, clubID string) ([]models.Meeting, error) {
	path := "/api/schedule/list"
	if clubID != "" {
		path += "?club=" + url.QueryEscape(clubID)
	}

	var meetings []models.Meeting
	if err := c.do(ctx, http.MethodGet, path, nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// CreateMeeting, yeni buluşma oluşturur ve backend'in kaydettiği halini döner.
func (c *Client) CreateMeeting(ctx context.Context, req *models.CreateMeetingRequest) (*models.Meeting, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrValidation, err.Error())
	}

	var meeting models.Meeting
	if err := c.do(ctx, http.MethodPost, "/api/schedule/create", req, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}
