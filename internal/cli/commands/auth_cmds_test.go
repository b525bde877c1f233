package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Vitrin/internal/cli/repo"
	fsrepo "Vitrin/internal/cli/repo/fs"

	"github.com/golang-jwt/jwt/v5"
)

// fakeAPI имитирует /api/user/* и принимает только выданный токен.
func fakeAPI(t *testing.T, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/login", "/api/user/register":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
		case "/api/user/me":
			if r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":5,"login":"alice"}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLoginStatusLogout_Flow(t *testing.T) {
	ts := fakeAPI(t, "tok-123")
	defer ts.Close()
	cfg := withTempConfig(t, ts)
	ctx := context.Background()

	out := withStdoutCapture(t, func() {
		if err := (statusCmd{}).Run(ctx, cfg, nil); err != nil {
			t.Fatalf("status: %v", err)
		}
	})
	if !strings.Contains(out, "not authenticated") {
		t.Fatalf("expected anonymous status, got %s", out)
	}

	out = withStdoutCapture(t, func() {
		if err := (loginCmd{}).Run(ctx, cfg, []string{"alice", "secret"}); err != nil {
			t.Fatalf("login: %v", err)
		}
	})
	if !strings.Contains(out, "Logged in successfully") {
		t.Fatalf("unexpected login output: %s", out)
	}
	if tok, err := fsrepo.New(cfg.StoragePath).GetItem(repo.KeyTokenStorage); err != nil || tok != "tok-123" {
		t.Fatalf("token not stored: %q %v", tok, err)
	}

	// новый процесс: статус берёт токен из хранилища
	out = withStdoutCapture(t, func() {
		if err := (statusCmd{}).Run(ctx, cfg, nil); err != nil {
			t.Fatalf("status: %v", err)
		}
	})
	if !strings.Contains(out, "authenticated as alice (id 5)") {
		t.Fatalf("unexpected status output: %s", out)
	}

	withStdoutCapture(t, func() {
		if err := (logoutCmd{}).Run(ctx, cfg, nil); err != nil {
			t.Fatalf("logout: %v", err)
		}
	})
	if _, err := fsrepo.New(cfg.StoragePath).GetItem(repo.KeyTokenStorage); err == nil {
		t.Fatalf("token must be removed on logout")
	}
}

func TestLogin_RegisterErrorsAndUsage(t *testing.T) {
	ts := fakeAPI(t, "tok")
	defer ts.Close()
	cfg := withTempConfig(t, ts)
	ctx := context.Background()

	if err := (loginCmd{}).Run(ctx, cfg, []string{"alice", "bad"}); err == nil {
		t.Fatalf("expected error for bad password")
	}
	if err := (loginCmd{}).Run(ctx, cfg, []string{"onlyLogin"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if err := (registerCmd{}).Run(ctx, cfg, []string{"a"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if err := (logoutCmd{}).Run(ctx, cfg, []string{"extra"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if err := (statusCmd{}).Run(ctx, cfg, []string{"extra"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}

	out := withStdoutCapture(t, func() {
		if err := (registerCmd{}).Run(ctx, cfg, []string{"bob", "secret"}); err != nil {
			t.Fatalf("register: %v", err)
		}
	})
	if !strings.Contains(out, "Registered") {
		t.Fatalf("unexpected register output: %s", out)
	}
}

func TestStatus_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()
	cfg := withTempConfig(t, ts)
	if err := (statusCmd{}).Run(context.Background(), cfg, nil); err == nil {
		t.Fatalf("status should fail on 500")
	}
}

func TestWhoami(t *testing.T) {
	cfg := withTempConfig(t, nil)
	ctx := context.Background()

	out := withStdoutCapture(t, func() { _ = (whoamiCmd{}).Run(ctx, cfg, nil) })
	if !strings.Contains(out, "Not logged in") {
		t.Fatalf("unexpected output: %s", out)
	}

	kv := fsrepo.New(cfg.StoragePath)
	_ = kv.SetItem(repo.KeyTokenStorage, "opaque-token")
	out = withStdoutCapture(t, func() { _ = (whoamiCmd{}).Run(ctx, cfg, nil) })
	if !strings.Contains(out, "opaque token") {
		t.Fatalf("unexpected output: %s", out)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "5",
		"login": "alice",
		"exp":   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_ = kv.SetItem(repo.KeyTokenStorage, signed)
	out = withStdoutCapture(t, func() { _ = (whoamiCmd{}).Run(ctx, cfg, nil) })
	if !strings.Contains(out, "Logged in as alice (subject 5)") || !strings.Contains(out, "2030-01-01") {
		t.Fatalf("unexpected output: %s", out)
	}
	if strings.Contains(out, signed) {
		t.Fatalf("token must not be printed")
	}
}
