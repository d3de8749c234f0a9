package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmw "github.com/mind-engage/mcq-reviewer/internal/auth/middleware"
	"github.com/mind-engage/mcq-reviewer/internal/config"
	"github.com/mind-engage/mcq-reviewer/internal/rbac"
)

const guestCookie = "mcq_guest_id"

type tokenOut struct {
	AccessToken string `json:"access_token"`
	Subject     string `json:"subject"`
	Role        string `json:"role"`
}

// GuestLoginHandler issues a guest token. A browser that already holds a guest
// cookie keeps its subject, and with it its saved session.
func GuestLoginHandler(a *authmw.AuthService, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := ""
		if c, err := r.Cookie(guestCookie); err == nil && strings.HasPrefix(c.Value, "guest|") {
			if _, err := uuid.Parse(strings.TrimPrefix(c.Value, "guest|")); err == nil {
				sub = c.Value
			}
		}
		if sub == "" {
			sub = "guest|" + uuid.NewString()
		}

		tok, err := a.IssueJWT(sub, rbac.RoleGuest)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     guestCookie,
			Value:    sub,
			Path:     "/",
			HttpOnly: true,
			Secure:   cfg.Mode == config.ModeOnline,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
		})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenOut{AccessToken: tok, Subject: sub, Role: rbac.RoleGuest})
	}
}

// POST /auth/admin  { "username": "...", "password": "..." }
func AdminLoginHandler(a *authmw.AuthService, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.AdminPassHash == "" {
			http.Error(w, "admin login disabled", http.StatusForbidden)
			return
		}
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Username != cfg.AdminUser ||
			bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		sub := "admin|" + req.Username
		tok, err := a.IssueJWT(sub, rbac.RoleAdmin)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenOut{AccessToken: tok, Subject: sub, Role: rbac.RoleAdmin})
	}
}
