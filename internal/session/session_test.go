package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/storage"
)

type fixture struct {
	store    *storage.Store
	client   *api.Client
	requests *atomic.Int64
}

func newFixture(t *testing.T, handler http.HandlerFunc) (*Container, *fixture) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	requests := &atomic.Int64{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := api.New(server.URL, 5*time.Second, slog.Default())
	container := New(store, client, slog.Default())
	client.SetTokenSource(container.Token)

	return container, &fixture{store: store, client: client, requests: requests}
}

func loginOK(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"token":    "abc",
		"type":     "Bearer",
		"id":       7,
		"fullName": "A",
		"email":    "a@example.com",
		"role":     "ADMIN",
	})
}

func TestLogin(t *testing.T) {
	t.Run("success establishes and persists the session", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)

		user, err := c.Login(context.Background(), "a@example.com", "secret1")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if !c.IsAuthenticated() {
			t.Fatal("expected authenticated session")
		}
		if user.FullName != "A" || user.Role != "ADMIN" || user.ID != 7 {
			t.Fatalf("unexpected user %+v", user)
		}
		if c.Token() != "abc" {
			t.Fatalf("unexpected token %q", c.Token())
		}

		// The persisted user record excludes the token and type markers.
		raw, ok, err := fx.store.Get(storage.KeyUser)
		if err != nil || !ok {
			t.Fatalf("Get user: ok=%v err=%v", ok, err)
		}
		var persisted map[string]any
		if err := json.Unmarshal(raw, &persisted); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if _, has := persisted["token"]; has {
			t.Fatal("token must not be in the persisted user record")
		}
		if _, has := persisted["type"]; has {
			t.Fatal("type marker must not be in the persisted user record")
		}
		if persisted["fullName"] != "A" || persisted["role"] != "ADMIN" {
			t.Fatalf("unexpected persisted record %v", persisted)
		}
	})

	t.Run("rejected credentials -> AuthenticationError", func(t *testing.T) {
		c, _ := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Bad credentials"}`))
		})

		_, err := c.Login(context.Background(), "a@example.com", "wrong")
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthenticationError, got %v", err)
		}
		if c.IsAuthenticated() {
			t.Fatal("must stay logged out")
		}
	})

	t.Run("response without token -> AuthenticationError", func(t *testing.T) {
		c, _ := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"fullName":"A","role":"ADMIN"}`))
		})

		_, err := c.Login(context.Background(), "a@example.com", "secret1")
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthenticationError, got %v", err)
		}
		if !errors.Is(err, api.ErrMissingToken) {
			t.Fatalf("expected ErrMissingToken in the chain, got %v", err)
		}
	})
}

func TestRegister(t *testing.T) {
	t.Run("validation failure never reaches the network", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)

		_, err := c.Register(context.Background(), RegisterInput{
			FullName:    "A",
			Email:       "not-an-email",
			Password:    "secret1",
			PhoneNumber: "123",
			Address:     "Main St 1",
		})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if fx.requests.Load() != 0 {
			t.Fatalf("expected zero requests, got %d", fx.requests.Load())
		}
	})

	t.Run("short password is rejected locally", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)

		_, err := c.Register(context.Background(), RegisterInput{
			FullName:    "A",
			Email:       "a@example.com",
			Password:    "123",
			PhoneNumber: "123",
			Address:     "Main St 1",
		})
		if err == nil || fx.requests.Load() != 0 {
			t.Fatalf("expected local rejection, err=%v requests=%d", err, fx.requests.Load())
		}
	})

	t.Run("success behaves like login", func(t *testing.T) {
		c, _ := newFixture(t, loginOK)

		user, err := c.Register(context.Background(), RegisterInput{
			FullName:    "A",
			Email:       "a@example.com",
			Password:    "secret1",
			PhoneNumber: "123",
			Address:     "Main St 1",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if !c.IsAuthenticated() || user.Role != "ADMIN" {
			t.Fatalf("unexpected state, user=%+v", user)
		}
	})
}

func TestLogout(t *testing.T) {
	c, fx := newFixture(t, loginOK)

	if _, err := c.Login(context.Background(), "a@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := c.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if c.IsAuthenticated() || c.Token() != "" || c.User() != nil {
		t.Fatal("expected cleared session")
	}
	for _, key := range []string{storage.KeyToken, storage.KeyUser} {
		if _, ok, _ := fx.store.Get(key); ok {
			t.Fatalf("expected %q to be deleted", key)
		}
	}
}

func TestInitialize(t *testing.T) {
	t.Run("picks up a persisted session", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)
		if _, err := c.Login(context.Background(), "a@example.com", "secret1"); err != nil {
			t.Fatalf("Login: %v", err)
		}

		fresh := New(fx.store, fx.client, slog.Default())
		fresh.Initialize()
		if !fresh.IsAuthenticated() {
			t.Fatal("expected restored session")
		}
		if fresh.User().FullName != "A" {
			t.Fatalf("unexpected user %+v", fresh.User())
		}
	})

	t.Run("malformed persisted user is treated as absent", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)
		fx.store.Put(storage.KeyToken, []byte("abc"))
		fx.store.Put(storage.KeyUser, []byte("{not json"))

		c.Initialize()
		if c.IsAuthenticated() {
			t.Fatal("expected logged-out state for corrupt user record")
		}
	})

	t.Run("token without user is not a session", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)
		fx.store.Put(storage.KeyToken, []byte("abc"))

		c.Initialize()
		if c.IsAuthenticated() {
			t.Fatal("expected logged-out state")
		}
	})

	t.Run("expired JWT is discarded", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)

		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": int64(7),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := expired.SignedString([]byte("backend-secret"))
		if err != nil {
			t.Fatalf("SignedString: %v", err)
		}

		fx.store.Put(storage.KeyToken, []byte(signed))
		fx.store.Put(storage.KeyUser, []byte(`{"fullName":"A","role":"ADMIN"}`))

		c.Initialize()
		if c.IsAuthenticated() {
			t.Fatal("expected expired session to be discarded")
		}
	})

	t.Run("opaque non-JWT token is accepted", func(t *testing.T) {
		c, fx := newFixture(t, loginOK)
		fx.store.Put(storage.KeyToken, []byte("opaque-token"))
		fx.store.Put(storage.KeyUser, []byte(`{"fullName":"A","role":"ADMIN"}`))

		c.Initialize()
		if !c.IsAuthenticated() {
			t.Fatal("expected opaque token to restore the session")
		}
	})
}

func TestAuthTransitions(t *testing.T) {
	c, _ := newFixture(t, loginOK)
	ctx := context.Background()

	// Any sequence of login/register/logout keeps the invariant:
	// authenticated right after login/register, not after logout.
	if c.IsAuthenticated() {
		t.Fatal("fresh container must be logged out")
	}
	c.Login(ctx, "a@example.com", "secret1")
	if !c.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	c.Logout()
	if c.IsAuthenticated() {
		t.Fatal("expected logged out after logout")
	}
	c.Register(ctx, RegisterInput{FullName: "A", Email: "a@example.com", Password: "secret1", PhoneNumber: "1", Address: "x"})
	if !c.IsAuthenticated() {
		t.Fatal("expected authenticated after register")
	}
	c.Logout()
	if c.IsAuthenticated() {
		t.Fatal("expected logged out after final logout")
	}
}
