// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Backend API'den gelen/giden verilerin Go karşılığıdır.
// Bu client iş mantığı barındırmaz — modeller backend kontratını yansıtır.
//
// Go'da `json:"username"` gibi tag'ler, struct field'larının JSON'a
// nasıl serialize/deserialize edileceğini belirler.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// User, bir NEIGHBUS kullanıcısını temsil eder.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	AvatarURL *string   `json:"avatar_url"` // *string = nullable — Go'da nil olabilir
	CreatedAt time.Time `json:"created_at"`
}

// Session, process genelinde TEK instance olan aktif oturumu temsil eder.
// Login/signup başarılı olduğunda oluşturulur, logout'ta yok edilir.
// Cihaz üzerindeki store'a şifrelenmiş olarak persist edilir.
type Session struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AuthToken string `json:"auth_token"`
}

// LoginRequest, login isteği payload'ı.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, LoginRequest kontrolü — boş alan varsa network çağrısı yapılmaz.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// SignupRequest, kayıt isteği payload'ı.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Validate, SignupRequest kontrolü.
// Kuralları backend de uygular — buradaki kontrol boş yere round-trip yapmamak için.
func (r *SignupRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	usernameLen := utf8.RuneCountInString(r.Username)
	if usernameLen < 3 || usernameLen > 32 {
		return fmt.Errorf("username must be 3-32 characters")
	}
	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	r.Nickname = strings.TrimSpace(r.Nickname)
	if r.Nickname == "" {
		return fmt.Errorf("nickname is required")
	}
	return nil
}

// AuthResponse, login/signup yanıtı.
// Backend kontratı: status == 1 başarı sinyalidir; HTTP 200 tek başına yetmez.
type AuthResponse struct {
	Status int    `json:"status"`
	User   User   `json:"user"`
	Token  string `json:"token"`
}

// OK, backend'in başarı sinyalini kontrol eder.
func (r *AuthResponse) OK() bool {
	return r.Status == 1
}
