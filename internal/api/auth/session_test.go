package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	store := NewStore(time.Hour, false)

	rec := httptest.NewRecorder()
	if err := store.Create(rec, "admin"); err != nil {
		t.Fatal(err)
	}
	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	if !store.Valid(req) {
		t.Fatal("fresh session rejected")
	}

	clearRec := httptest.NewRecorder()
	store.Clear(clearRec, req)
	if store.Valid(req) {
		t.Error("cleared session still valid")
	}
}

func TestSessionExpiry(t *testing.T) {
	store := NewStore(time.Millisecond, false)
	rec := httptest.NewRecorder()
	if err := store.Create(rec, "admin"); err != nil {
		t.Fatal(err)
	}
	cookie := sessionCookie(t, rec)

	time.Sleep(5 * time.Millisecond)
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	if store.Valid(req) {
		t.Error("expired session accepted")
	}
}

func TestSecondLoginInvalidatesFirst(t *testing.T) {
	store := NewStore(time.Hour, false)

	rec1 := httptest.NewRecorder()
	store.Create(rec1, "admin")
	first := sessionCookie(t, rec1)

	rec2 := httptest.NewRecorder()
	store.Create(rec2, "admin")

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(first)
	if store.Valid(req) {
		t.Error("old session survived a new login")
	}
}

func TestValidWithoutCookie(t *testing.T) {
	store := NewStore(time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	if store.Valid(req) {
		t.Error("request without cookie accepted")
	}
}
