package kimai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 5*time.Second, testLogger())
}

func TestRequest_BuildsAPIPathAndHeaders(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	})

	if _, err := c.Request(context.Background(), http.MethodGet, "timesheets", nil, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if got.URL.Path != "/api/timesheets" {
		t.Errorf("path = %q, want /api/timesheets", got.URL.Path)
	}
	if auth := got.Header.Get("Authorization"); auth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", auth)
	}
	if accept := got.Header.Get("Accept"); accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
}

func TestRequest_EncodesQuery(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	q := url.Values{}
	q.Set("page", "2")
	q.Set("size", "50")
	if _, err := c.Request(context.Background(), http.MethodGet, "projects", q, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("size") != "50" {
		t.Errorf("query = %v, want page=2 size=50", gotQuery)
	}
}

func TestRequest_SendsJSONBody(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7}`))
	})

	body := map[string]any{"name": "Internal", "visible": true}
	raw, err := c.Request(context.Background(), http.MethodPost, "projects", nil, body)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	var sent map[string]any
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if sent["name"] != "Internal" {
		t.Errorf("sent name = %v, want Internal", sent["name"])
	}
	if string(raw) != `{"id":7}` {
		t.Errorf("response = %s, want verbatim body", raw)
	}
}

func TestRequest_EmptyBodyBecomesSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	raw, err := c.Request(context.Background(), http.MethodDelete, "timesheets/12", nil, nil)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if string(raw) != `{"success":true}` {
		t.Errorf("response = %s, want {\"success\":true}", raw)
	}
}

func TestRequest_ClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantText string
	}{
		{"unauthorized", 401, `{"code":401,"message":"Invalid credentials"}`, KindAuthentication, "Invalid credentials"},
		{"forbidden", 403, `{"message":"Access denied"}`, KindAuthentication, "Access denied"},
		{"not found", 404, `{"code":404,"message":"Not found"}`, KindNotFound, "Not found"},
		{"server error", 500, "something broke", KindUpstream, "something broke"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Request(context.Background(), http.MethodGet, "timesheets", nil, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !IsKind(err, tt.wantKind) {
				t.Fatalf("error kind = %v, want %s", err, tt.wantKind)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %T is not *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Detail != tt.wantText {
				t.Errorf("detail = %q, want %q", apiErr.Detail, tt.wantText)
			}
		})
	}
}

func TestRequest_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(srv.URL, "tok", time.Second, testLogger())

	_, err := c.Request(context.Background(), http.MethodGet, "version", nil, nil)
	if !IsKind(err, KindNetwork) {
		t.Fatalf("error = %v, want network kind", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not *APIError", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("status = %d, want 0 for network failures", apiErr.Status)
	}
	if apiErr.Unwrap() == nil {
		t.Error("network error should wrap the transport error")
	}
}

func TestRequest_RejectsNonJSONSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>login</body></html>"))
	})

	_, err := c.Request(context.Background(), http.MethodGet, "version", nil, nil)
	if !IsKind(err, KindUpstream) {
		t.Fatalf("error = %v, want upstream kind", err)
	}
}
