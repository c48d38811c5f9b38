// Package api — auth endpoint'leri.
//
// Route'lar:
//
//	POST /api/auth/login  → Login
//	POST /api/auth/signup → Signup
//	POST /api/auth/logout → Logout (best effort — local logout buna bağlı değildir)
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
)

// Login, kullanıcı adı + şifre ile oturum açar.
// Backend kontratı: HTTP 200 + status == 1 → başarı; status != 1 geçersiz kimlik demektir.
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrValidation, err.Error())
	}

	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthenticated)
	}
	return &resp, nil
}

// Signup, yeni hesap oluşturur. Başarıda backend login gibi token döner.
func (c *Client) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrValidation, err.Error())
	}

	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: signup rejected by server", pkg.ErrTransport)
	}
	return &resp, nil
}

// Logout, backend'e oturumun kapandığını bildirir.
// Hata dönse bile local oturum silinir — bu çağrı best effort'tur.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}
