// Package models — Friendship domain modeli.
//
// Arkadaşlık kayıtları backend'de tutulur:
// - "pending": İstek gönderildi, henüz kabul edilmedi
// - "accepted": Arkadaşlık aktif
//
// Client tarafında roster (arkadaşlar + bekleyen istekler) her mutasyondan
// sonra KOMPLE yeniden fetch edilir — incremental merge yapılmaz.
package models

import (
	"fmt"
	"strings"
	"time"
)

// FriendshipStatus, arkadaşlık durumunu temsil eden typed constant.
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// FriendEntry, rosterdaki bir arkadaşı temsil eder.
// Karşı tarafın kimlik + görüntüleme bilgisi backend JOIN'i ile gelir.
type FriendEntry struct {
	ID        string           `json:"id"` // Arkadaşlık kaydının ID'si
	UserID    string           `json:"user_id"`
	Username  string           `json:"username"`
	Nickname  string           `json:"nickname"`
	AvatarURL *string          `json:"avatar_url"`
	Status    FriendshipStatus `json:"status"`
	RoomID    string           `json:"room_id"` // Bu arkadaşla olan sohbet odası
	CreatedAt time.Time        `json:"created_at"`
}

// FriendRequestEntry, bekleyen bir arkadaşlık isteğini temsil eder.
type FriendRequestEntry struct {
	ID        string    `json:"id"` // İstek kaydının ID'si — accept/refuse bu ID ile yapılır
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// Roster, arkadaş listesi endpoint'inin tam yanıtı.
// Incoming/Outgoing ayrımı backend'de yapılır.
type Roster struct {
	Friends  []FriendEntry        `json:"friends"`
	Incoming []FriendRequestEntry `json:"incoming"`
	Outgoing []FriendRequestEntry `json:"outgoing"`
}

// SendFriendRequestRequest, arkadaşlık isteği gönderme payload'ı.
// Username ile arama yapılır — ID client'ta bilinmeyebilir.
type SendFriendRequestRequest struct {
	Username string `json:"username"`
}

// Validate, SendFriendRequestRequest kontrolü.
// Hedef boşsa yerel olarak reddedilir — network çağrısı yapılmaz.
func (r *SendFriendRequestRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
