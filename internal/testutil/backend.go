// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/model"
	"taskboard/internal/server"
)

// StartBackend spins up the in-memory API server and returns its base URL
// (including the /api prefix). The server is torn down with the test.
func StartBackend(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(server.New("test-secret").Router())
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

// NewConfig builds a config pointing at baseURL with an isolated temp
// config directory.
func NewConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Dir:     t.TempDir(),
		BaseURL: baseURL,
	}
}

// SeedAccount registers a user on the backend and returns the profile and
// session token.
func SeedAccount(t *testing.T, baseURL, name, email, password string) (model.User, string) {
	t.Helper()
	client := api.New(baseURL)
	user, token, err := client.Signup(context.Background(), name, email, password)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return user, token
}
