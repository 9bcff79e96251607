package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")
	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestDoWithoutTokenFailsLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListTasks(context.Background())
	if err != ErrUnauthenticated {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if called {
		t.Error("request was sent despite missing token")
	}
}

func TestRejectionCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid email or password"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "a@b.c", "nope")
	if !IsRejection(err) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if Message(err) != "invalid email or password" {
		t.Errorf("message = %q", Message(err))
	}
}

func TestRejectionFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "a@b.c", "pw")
	if Message(err) != "login failed" {
		t.Errorf("message = %q, want generic fallback", Message(err))
	}
}

func TestSuccessFalseBodyIsRejection(t *testing.T) {
	// 200 status but the envelope says no.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "nope"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "a@b.c", "pw")
	if !IsRejection(err) {
		t.Fatalf("expected rejection, got %v", err)
	}
}

func TestTransportErrorIsNotRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "a@b.c", "pw")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsRejection(err) {
		t.Errorf("transport failure classified as rejection: %v", err)
	}
}

func TestTaskTransform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"_id": "abc", "title": "one", "status": "in-progress", "priority": "high", "createdAt": "2026-01-01T00:00:00Z"},
				{"id": "def", "title": "two", "status": "bogus"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")
	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	if tasks[0].ID != "abc" {
		t.Errorf("mongo id not normalized: %q", tasks[0].ID)
	}
	if tasks[1].ID != "def" {
		t.Errorf("plain id lost: %q", tasks[1].ID)
	}
	if tasks[1].Priority != "medium" {
		t.Errorf("missing priority should default to medium, got %q", tasks[1].Priority)
	}
	if tasks[1].Status != "todo" {
		t.Errorf("unknown status should normalize to todo, got %q", tasks[1].Status)
	}
	if tasks[1].DueDate != "" {
		t.Errorf("missing dueDate should stay empty, got %q", tasks[1].DueDate)
	}
}
