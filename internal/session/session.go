// Package session holds the authenticated identity for the life of the
// process and keeps it in sync with durable client storage, so a restart
// picks the login back up.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
	"github.com/deltapharm/pharmacy-client-golang/internal/storage"
)

// AuthenticationError means the backend rejected the credentials, or its
// response was unusable as a session (no token).
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RegisterInput is validated locally before the network call; the rules
// mirror the backend's (min password length 6).
type RegisterInput struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Address     string `json:"address" validate:"required"`
}

type Container struct {
	store    *storage.Store
	api      *api.Client
	validate *validator.Validate
	log      *slog.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
}

func New(store *storage.Store, apiClient *api.Client, log *slog.Logger) *Container {
	return &Container{
		store:    store,
		api:      apiClient,
		validate: validator.New(),
		log:      log,
	}
}

// Initialize loads the persisted token and user record. Anything missing,
// malformed, or expired is treated as "not logged in"; it never fails.
func (c *Container) Initialize() {
	rawToken, okToken, err := c.store.Get(storage.KeyToken)
	if err != nil || !okToken {
		return
	}
	rawUser, okUser, err := c.store.Get(storage.KeyUser)
	if err != nil || !okUser {
		return
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		c.log.Warn("discarding unparsable persisted user record", "err", err)
		return
	}

	token := string(rawToken)
	if token == "" || (user.Email == "" && user.FullName == "") {
		return
	}
	if tokenExpired(token) {
		c.log.Info("persisted token has expired, starting logged out")
		return
	}

	c.mu.Lock()
	c.token = token
	c.user = &user
	c.mu.Unlock()
}

// Login exchanges credentials for a session. The backend's response is the
// user record with a token (and token-type marker) mixed in; the token is
// persisted on its own and stripped from the stored user record.
func (c *Container) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload := map[string]string{"email": email, "password": password}

	var response map[string]any
	if err := c.api.Post(ctx, "/auth/login", payload, &response); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 403) {
			return nil, &AuthenticationError{Reason: "invalid credentials", Err: err}
		}
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	return c.establish(response)
}

// Register creates an account and logs straight into it; same persistence
// contract as Login.
func (c *Container) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid registration input: %w", err)
	}

	var response map[string]any
	if err := c.api.Post(ctx, "/auth/register", input, &response); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return nil, &AuthenticationError{Reason: apiErr.Message, Err: err}
		}
		return nil, fmt.Errorf("registration request failed: %w", err)
	}

	return c.establish(response)
}

// establish persists and adopts an auth response: token under its own key,
// everything else (minus the type marker) as the user record.
func (c *Container) establish(response map[string]any) (*models.User, error) {
	token, _ := response["token"].(string)
	if token == "" {
		return nil, &AuthenticationError{Reason: "no token in response", Err: api.ErrMissingToken}
	}

	delete(response, "token")
	delete(response, "type")

	rawUser, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user record: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil, &AuthenticationError{Reason: "malformed user payload", Err: api.ErrMalformedPayload}
	}

	if err := c.store.Put(storage.KeyToken, []byte(token)); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}
	if err := c.store.Put(storage.KeyUser, rawUser); err != nil {
		return nil, fmt.Errorf("failed to persist user record: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.user = &user
	c.mu.Unlock()

	c.log.Info("session established", "user", user.Email, "role", user.Role)
	return &user, nil
}

// Logout clears the session. Memory is cleared first so the caller is
// logged out even if the storage writes fail; no backend call is involved.
func (c *Container) Logout() error {
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.mu.Unlock()

	if err := c.store.Delete(storage.KeyToken); err != nil {
		return err
	}
	return c.store.Delete(storage.KeyUser)
}

// IsAuthenticated holds iff both token and user are present.
func (c *Container) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != "" && c.user != nil
}

// Token satisfies api.TokenSource.
func (c *Container) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns a copy of the current user, or nil when logged out.
func (c *Container) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// tokenExpired decodes the JWT claims without verifying the signature (the
// signing key is the backend's) purely to drop stale sessions at startup.
// Tokens that are not JWTs at all are left to the backend to judge.
func tokenExpired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
