// Package api — reaction endpoint'leri.
//
// Backend üç ayrı verb sunar; hangisinin çağrılacağına reaction paketi
// (geçiş analizi ile) karar verir — burada sabit bir eşleme YOKTUR:
//
//	POST   /api/reaction/insert → InsertReaction (ilk oy)
//	PUT    /api/reaction/update → UpdateReaction (like ↔ dislike geçişi)
//	DELETE /api/reaction/delete → DeleteReaction (retraction — tür gönderilmez)
//
// Üçü de server-authoritative sayıları döner; client başarıda yerel
// optimistic state'in üzerine bu değerleri yazar.
package api

import (
	"context"
	"net/http"

	"github.com/neighbus/neighbus/models"
)

// InsertReaction, içeriğe ilk tepkiyi kaydeder.
func (c *Client) InsertReaction(ctx context.Context, contentID string, kind models.ReactionKind) (*models.ReactionState, error) {
	req := models.ReactionRequest{ContentID: contentID, ReactionType: kind}

	var state models.ReactionState
	if err := c.do(ctx, http.MethodPost, "/api/reaction/insert", &req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// UpdateReaction, aktif tepkiyi diğer türe çevirir.
func (c *Client) UpdateReaction(ctx context.Context, contentID string, kind models.ReactionKind) (*models.ReactionState, error) {
	req := models.ReactionRequest{ContentID: contentID, ReactionType: kind}

	var state models.ReactionState
	if err := c.do(ctx, http.MethodPut, "/api/reaction/update", &req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// DeleteReaction, kullanıcının aktif tepkisini geri çeker.
// Tür gönderilmez — backend hangi tepkinin aktif olduğunu zaten bilir.
func (c *Client) DeleteReaction(ctx context.Context, contentID string) (*models.ReactionState, error) {
	req := models.ReactionRequest{ContentID: contentID}

	var state models.ReactionState
	if err := c.do(ctx, http.MethodDelete, "/api/reaction/delete", &req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
