// Package models — Meeting (kulüp buluşması) domain modeli.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Meeting, planlanmış bir kulüp buluşmasını temsil eder.
type Meeting struct {
	ID            string    `json:"id"`
	ClubID        string    `json:"club_id"`
	Title         string    `json:"title"`
	Place         string    `json:"place"`
	StartsAt      time.Time `json:"starts_at"`
	AttendeeCount int       `json:"attendee_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateMeetingRequest, yeni buluşma oluşturma payload'ı.
type CreateMeetingRequest struct {
	ClubID   string    `json:"club_id"`
	Title    string    `json:"title"`
	Place    string    `json:"place"`
	StartsAt time.Time `json:"starts_at"`
}

// Validate, CreateMeetingRequest kontrolü.
func (r *CreateMeetingRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	r.Place = strings.TrimSpace(r.Place)
	if r.Place == "" {
		return fmt.Errorf("place is required")
	}
	if r.StartsAt.IsZero() {
		return fmt.Errorf("start time is required")
	}
	return nil
}
