package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mind-engage/mcq-reviewer/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("secret", time.Hour)
	tok, err := a.IssueJWT("guest|x", rbac.RoleGuest)
	if err != nil {
		t.Fatal(err)
	}
	c, err := a.Parse(tok)
	if err != nil || c.Sub != "guest|x" || c.Role != rbac.RoleGuest {
		t.Fatalf("claims = %+v, err = %v", c, err)
	}
	if _, err := NewAuthService("other", time.Hour).Parse(tok); err == nil {
		t.Fatal("token verified with wrong secret")
	}
	expired := NewAuthService("secret", -time.Minute)
	old, _ := expired.IssueJWT("guest|x", rbac.RoleGuest)
	if _, err := a.Parse(old); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("secret", time.Hour)
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rec.Code)
	}

	forged, _ := a.IssueJWT("guest|x", rbac.RoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("role/subject mismatch: %d", rec.Code)
	}

	tok, _ := a.IssueJWT("admin|root", rbac.RoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || gotSub != "admin|root" || gotRole != rbac.RoleAdmin {
		t.Fatalf("status=%d sub=%q role=%q", rec.Code, gotSub, gotRole)
	}
}

func TestSubjectFromContext(t *testing.T) {
	if got := SubjectFromContext(context.Background()); got != Anonymous {
		t.Fatalf("empty context: %q", got)
	}
	ctx := WithSubject(context.Background(), "guest|abc")
	if got := SubjectFromContext(ctx); got != "guest|abc" {
		t.Fatalf("got %q", got)
	}
	for sub, want := range map[string]string{"guest|abc": "guest", "admin|root": "admin", "plain": "plain"} {
		if got := SubjectKind(sub); got != want {
			t.Errorf("SubjectKind(%q) = %q, want %q", sub, got, want)
		}
	}
}
