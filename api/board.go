// Package api — board (pano/galeri) endpoint'leri.
//
// Route'lar:
//
//	GET /api/board/{kind}/posts → ListPosts
//	GET /api/board/posts/{id}   → GetPost
//
// Salt okunur akışlar — gönderi oluşturma/görsel yükleme mobil client'ın
// image-picker akışına bağlıdır ve bu client'ın kapsamı dışındadır.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/neighbus/neighbus/models"
)

// ListPosts, seçilen panonun gönderi özetlerini döner (yeni → eski).
func (c *Client) ListPosts(ctx context.Context, board models.BoardKind) ([]models.PostSummary, error) {
	var posts []models.PostSummary
	path := fmt.Sprintf("/api/board/%s/posts", url.PathEscape(string(board)))
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost, gönderi detayını döner.
// Dönen PostDetail.Reactions, detay ekranının başlangıç ReactionState'idir.
func (c *Client) GetPost(ctx context.Context, postID string) (*models.PostDetail, error) {
	var post models.PostDetail
	path := "/api/board/posts/" + url.PathEscape(postID)
	if err := c.do(ctx, http.MethodGet, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
