package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.New(server.URL, 5*time.Second, slog.Default())
}

func TestProductSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`[]`))
	})

	if _, err := NewProductService(client).Search(context.Background(), "cough & cold"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "cough & cold" {
		t.Fatalf("got query %q", gotQuery)
	}
}

func TestPrescriptionUploadUsesQueryParams(t *testing.T) {
	var gotURL string
	var bodyLen int64
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		bodyLen = r.ContentLength
		json.NewEncoder(w).Encode(models.Prescription{ID: 3, Status: models.PrescriptionPending})
	})

	rx, err := NewPrescriptionService(client).Upload(context.Background(), models.PrescriptionUpload{
		UserID:     7,
		FileName:   "scan.pdf",
		FileType:   "application/pdf",
		DoctorName: "Dr. House",
		Notes:      "urgent",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if rx.ID != 3 {
		t.Fatalf("unexpected prescription %+v", rx)
	}

	// The backend takes upload metadata as query parameters, no body.
	parsed, err := url.Parse(gotURL)
	if err != nil {
		t.Fatalf("parse recorded URL: %v", err)
	}
	q := parsed.Query()
	if q.Get("userId") != "7" || q.Get("fileName") != "scan.pdf" || q.Get("doctorName") != "Dr. House" || q.Get("notes") != "urgent" {
		t.Fatalf("unexpected query %v", q)
	}
	if bodyLen > 0 {
		t.Fatalf("expected empty body, got %d bytes", bodyLen)
	}
}

func TestChatSendPayload(t *testing.T) {
	var got map[string]any
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(models.ChatMessage{ID: 11, Message: "hello"})
	})

	msg, err := NewChatService(client).Send(context.Background(), 42, "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.ID != 11 {
		t.Fatalf("unexpected message %+v", msg)
	}
	if got["receiverId"] != float64(42) || got["message"] != "hello" {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestOrderStatusUpdate(t *testing.T) {
	var gotPath string
	var got map[string]string
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	})

	if err := NewOrderService(client).UpdateStatus(context.Background(), 42, models.OrderShipped); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if gotPath != "/orders/42/status" || got["status"] != models.OrderShipped {
		t.Fatalf("got path=%q payload=%v", gotPath, got)
	}
}
