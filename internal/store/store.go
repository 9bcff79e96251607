// Package store is the persistent local store: the session token, the
// cached user profile, and the offline task collection, each a small JSON
// file under the config directory. Reads never fail loudly — a missing or
// malformed file is reported as "no cached data" so a corrupt cache can't
// take the client down.
package store

import (
	"encoding/json"
	"os"

	"golang.org/x/oauth2"

	"taskboard/internal/config"
	"taskboard/internal/model"
)

// Store reads and writes the local cache files for one config directory.
type Store struct {
	cfg *config.Config
}

// New creates a Store rooted at the given config.
func New(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// SaveToken persists the session token. The file uses the oauth2.Token
// shape so tooling that inspects token.json sees a conventional layout.
func (s *Store) SaveToken(token string) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	return writeJSON(s.cfg.TokenPath(), &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// Token returns the stored session token, or ok=false when absent or
// unreadable.
func (s *Store) Token() (string, bool) {
	var tok oauth2.Token
	if !readJSON(s.cfg.TokenPath(), &tok) {
		return "", false
	}
	if tok.AccessToken == "" {
		return "", false
	}
	return tok.AccessToken, true
}

// SaveUser persists the cached user profile.
func (s *Store) SaveUser(u model.User) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	return writeJSON(s.cfg.UserPath(), u)
}

// User returns the cached user profile, or ok=false when absent or
// unreadable.
func (s *Store) User() (model.User, bool) {
	var u model.User
	if !readJSON(s.cfg.UserPath(), &u) {
		return model.User{}, false
	}
	if u.ID == "" && u.Email == "" {
		return model.User{}, false
	}
	return u, true
}

// SaveTasks persists the offline task collection.
func (s *Store) SaveTasks(tasks []model.Task) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	return writeJSON(s.cfg.TasksPath(), tasks)
}

// Tasks returns the offline task collection, or ok=false when absent or
// unreadable.
func (s *Store) Tasks() ([]model.Task, bool) {
	var tasks []model.Task
	if !readJSON(s.cfg.TasksPath(), &tasks) {
		return nil, false
	}
	return tasks, true
}

// Clear removes the token and cached user. The offline task collection is
// not session state and survives.
func (s *Store) Clear() {
	os.Remove(s.cfg.TokenPath())
	os.Remove(s.cfg.UserPath())
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// readJSON loads path into v. Any failure (missing file, bad JSON) reads
// as absent data.
func readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}
