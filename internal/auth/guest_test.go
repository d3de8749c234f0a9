package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	authmw "github.com/mind-engage/mcq-reviewer/internal/auth/middleware"
	"github.com/mind-engage/mcq-reviewer/internal/config"
	"github.com/mind-engage/mcq-reviewer/internal/rbac"
)

func decodeToken(t *testing.T, rec *httptest.ResponseRecorder) tokenOut {
	t.Helper()
	var out tokenOut
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestGuestLoginReusesCookie(t *testing.T) {
	a := authmw.NewAuthService("secret", time.Hour)
	h := GuestLoginHandler(a, config.Config{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/guest", nil))
	first := decodeToken(t, rec)
	if !strings.HasPrefix(first.Subject, "guest|") || first.Role != rbac.RoleGuest {
		t.Fatalf("first = %+v", first)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != first.Subject {
		t.Fatalf("cookies = %v", cookies)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/guest", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if second := decodeToken(t, rec); second.Subject != first.Subject {
		t.Fatalf("subject changed: %q -> %q", first.Subject, second.Subject)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/guest", nil)
	req.AddCookie(&http.Cookie{Name: guestCookie, Value: "guest|not-a-uuid"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if forged := decodeToken(t, rec); forged.Subject == "guest|not-a-uuid" {
		t.Fatal("malformed cookie subject accepted")
	}
}

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a := authmw.NewAuthService("secret", time.Hour)
	cfg := config.Config{AdminUser: "admin", AdminPassHash: string(hash)}

	tests := []struct {
		name string
		cfg  config.Config
		body string
		want int
	}{
		{"ok", cfg, `{"username":"admin","password":"s3cret"}`, http.StatusOK},
		{"wrong password", cfg, `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"wrong user", cfg, `{"username":"root","password":"s3cret"}`, http.StatusUnauthorized},
		{"bad json", cfg, `{`, http.StatusBadRequest},
		{"disabled", config.Config{AdminUser: "admin"}, `{"username":"admin","password":"s3cret"}`, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/admin", strings.NewReader(tc.body))
			AdminLoginHandler(a, tc.cfg).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			if tc.want == http.StatusOK {
				out := decodeToken(t, rec)
				c, err := a.Parse(out.AccessToken)
				if err != nil || c.Role != rbac.RoleAdmin {
					t.Fatalf("claims = %+v, %v", c, err)
				}
			}
		})
	}
}
