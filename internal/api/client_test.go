package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(server.URL, 5*time.Second, slog.Default())
	return client, server
}

func TestBearerInjection(t *testing.T) {
	t.Run("token present -> Authorization header set", func(t *testing.T) {
		var gotAuth string
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		})
		defer server.Close()

		client.SetTokenSource(func() string { return "abc" })
		if err := client.Get(context.Background(), "/products", nil); err != nil {
			t.Fatalf("Get: %v", err)
		}
		if gotAuth != "Bearer abc" {
			t.Fatalf("got Authorization %q", gotAuth)
		}
	})

	t.Run("no token -> no Authorization header", func(t *testing.T) {
		var gotAuth string
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		})
		defer server.Close()

		client.SetTokenSource(func() string { return "" })
		if err := client.Get(context.Background(), "/products", nil); err != nil {
			t.Fatalf("Get: %v", err)
		}
		if gotAuth != "" {
			t.Fatalf("unexpected Authorization %q", gotAuth)
		}
	})
}

func TestRequestIDHeader(t *testing.T) {
	var gotID string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	if err := client.Get(context.Background(), "/products", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotID == "" {
		t.Fatal("expected an X-Request-ID header")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("non-2xx surfaces the backend message", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"Insufficient stock"}`))
		})
		defer server.Close()

		err := client.Post(context.Background(), "/orders", map[string]int{"x": 1}, nil)
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if apiErr.Status != http.StatusConflict || apiErr.Message != "Insufficient stock" {
			t.Fatalf("got %+v", apiErr)
		}
		if !IsStatus(err, http.StatusConflict) {
			t.Fatal("IsStatus should match")
		}
	})

	t.Run("error field is read when message is absent", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid input"}`))
		})
		defer server.Close()

		err := client.Get(context.Background(), "/products", nil)
		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.Message != "Invalid input" {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("undecodable 2xx body -> ErrMalformedPayload", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})
		defer server.Close()

		var out map[string]any
		err := client.Get(context.Background(), "/products", &out)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("expected ErrMalformedPayload, got %v", err)
		}
	})

	t.Run("2xx with nil out ignores the body", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`whatever`))
		})
		defer server.Close()

		if err := client.Delete(context.Background(), "/orders/1", nil); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})
}

func TestBaseURLJoining(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// Trailing slash on the base URL must not produce a double slash.
	client := New(server.URL+"/", 5*time.Second, slog.Default())
	if err := client.Get(context.Background(), "/products", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotPath != "/products" {
		t.Fatalf("got path %q", gotPath)
	}
}
