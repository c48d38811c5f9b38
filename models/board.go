// Package models — Board (pano/galeri) domain modeli.
//
// NEIGHBUS'ta iki tür içerik akışı vardır: galeri (fotoğraf ağırlıklı)
// ve serbest pano (metin). İkisi de aynı Post modelini paylaşır;
// BoardKind ayrımı sadece listeleme endpoint'ini seçer.
package models

import "time"

// BoardKind, içerik akışının türü.
type BoardKind string

const (
	BoardGallery BoardKind = "gallery"
	BoardFree    BoardKind = "free"
)

// PostSummary, liste ekranında gösterilen özet satır.
type PostSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	AuthorName   string    `json:"author_name"`
	ThumbnailURL *string   `json:"thumbnail_url"` // Galeri gönderilerinde dolu
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostDetail, detay ekranının tam içeriği.
// Reactions alanı, detay yüklendiğinde ReactionState'in başlangıç değeridir —
// sonrası Reaction Synchronizer'ın sorumluluğu.
type PostDetail struct {
	ID        string        `json:"id"`
	Board     BoardKind     `json:"board"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	ImageURLs []string      `json:"image_urls"`
	Author    User          `json:"author"`
	Reactions ReactionState `json:"reactions"`
	CreatedAt time.Time     `json:"created_at"`
}
