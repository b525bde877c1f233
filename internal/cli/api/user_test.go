package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Vitrin/internal/cli/repo"
)

func TestLogin_StoresTokenFromJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/user/login") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var cr Credentials
		if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
			t.Errorf("bad json: %v", err)
		}
		if cr.Login != "alice" || cr.Password != "secret" {
			t.Errorf("unexpected credentials: %+v", cr)
		}
		_, _ = w.Write([]byte(`{"token":"tok-123"}`))
	}))
	defer ts.Close()
	c, kv := newTestClient(t, ts)

	if err := c.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok, _ := c.Auth().Token(); tok != "tok-123" {
		t.Fatalf("holder token: %q", tok)
	}
	if tok, err := kv.GetItem(repo.KeyTokenStorage); err != nil || tok != "tok-123" {
		t.Fatalf("token not persisted, got %q err=%v", tok, err)
	}
}

func TestLogin_CookieFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "other", Value: "abc"})
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-cookie"})
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()
	c, _ := newTestClient(t, ts)

	if err := c.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok, _ := c.Auth().Token(); tok != "tok-cookie" {
		t.Fatalf("expected cookie token, got %q", tok)
	}
}

func TestLogin_Errors(t *testing.T) {
	ts401 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts401.Close()
	c, _ := newTestClient(t, ts401)
	if err := c.Login(context.Background(), "a", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if c.Auth().IsAuthenticated() {
		t.Fatalf("failed login must not authenticate")
	}

	tsEmpty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer tsEmpty.Close()
	c, _ = newTestClient(t, tsEmpty)
	if err := c.Login(context.Background(), "a", "b"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}

	ts500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts500.Close()
	c, _ = newTestClient(t, ts500)
	var se *StatusError
	if err := c.Login(context.Background(), "a", "b"); !errors.As(err, &se) || se.Code != 500 {
		t.Fatalf("expected StatusError 500, got %v", err)
	}
}

func TestRegister_SuccessAndConflict(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/user/register") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"token":"tok-new"}`))
	}))
	defer ts.Close()
	c, _ := newTestClient(t, ts)
	if err := c.Register(context.Background(), "bob", "pwd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !c.Auth().IsAuthenticated() {
		t.Fatalf("register must log in")
	}

	ts409 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer ts409.Close()
	c, _ = newTestClient(t, ts409)
	if err := c.Register(context.Background(), "bob", "pwd"); !errors.Is(err, ErrLoginTaken) {
		t.Fatalf("expected ErrLoginTaken, got %v", err)
	}
}

func TestMe_AndLogout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"login":"alice"}`))
	}))
	defer ts.Close()
	c, kv := newTestClient(t, ts)

	if _, err := c.Me(context.Background()); err == nil {
		t.Fatalf("expected 401 without token")
	}

	if err := c.Auth().Login("tok"); err != nil {
		t.Fatalf("holder login: %v", err)
	}
	u, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if u.ID != 7 || u.Login != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := kv.GetItem(repo.KeyTokenStorage); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("token must be removed from storage, got %v", err)
	}
	// после logout гидрация ничего не находит — запрос уходит без токена
	if _, err := c.Me(context.Background()); err == nil {
		t.Fatalf("expected 401 after logout")
	}
}
