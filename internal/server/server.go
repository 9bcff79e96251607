// Package server is an in-memory implementation of the task-board API,
// used for development and end-to-end tests. It speaks the same
// {success, message, data} envelope the client expects.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"taskboard/internal/model"
)

// account pairs a user profile with its password hash.
type account struct {
	user model.User
	hash []byte
}

// Server holds all state behind the API. Everything lives in memory.
type Server struct {
	mu      sync.RWMutex
	byID    map[string]*account
	byEmail map[string]*account
	tasks   map[string][]model.Task // user id -> tasks, insertion order

	secret   []byte
	tokenTTL time.Duration
}

// New creates a Server signing tokens with the given secret.
func New(secret string) *Server {
	return &Server{
		byID:     make(map[string]*account),
		byEmail:  make(map[string]*account),
		tasks:    make(map[string][]model.Task),
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
	}
}

// Router builds the API routes under /api.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK\n"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/auth/verify-token", s.withAuth(s.handleVerifyToken)).Methods("GET")
	api.HandleFunc("/auth/wallet", s.withAuth(s.handleWallet)).Methods("PUT")
	api.HandleFunc("/tasks", s.withAuth(s.handleListTasks)).Methods("GET")
	api.HandleFunc("/tasks", s.withAuth(s.handleCreateTask)).Methods("POST")
	api.HandleFunc("/tasks/{id}", s.withAuth(s.handleUpdateTask)).Methods("PUT")
	api.HandleFunc("/tasks/{id}", s.withAuth(s.handleDeleteTask)).Methods("DELETE")
	return r
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
}

// fail writes a failure envelope with a human-readable message.
func fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
