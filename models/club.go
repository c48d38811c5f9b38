// Package models — Club (mahalle kulübü) domain modeli.
package models

import "time"

// Club, bir mahalle kulübünü temsil eder.
type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberCount int       `json:"member_count"`
	IsMember    bool      `json:"is_member"` // Oturum sahibinin üyelik durumu
	CreatedAt   time.Time `json:"created_at"`
}
