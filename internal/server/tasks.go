package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taskboard/internal/model"
)

type taskPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, userID string) {
	s.mu.RLock()
	tasks := make([]model.Task, len(s.tasks[userID]))
	copy(tasks, s.tasks[userID])
	s.mu.RUnlock()
	respond(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, userID string) {
	var p taskPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Title == nil || *p.Title == "" {
		fail(w, http.StatusBadRequest, "title is required")
		return
	}

	status := model.StatusTodo
	if p.Status != nil {
		parsed, err := model.ParseStatus(*p.Status)
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}
		status = parsed
	}
	priority := model.PriorityMedium
	if p.Priority != nil && *p.Priority != "" {
		parsed, err := model.ParsePriority(*p.Priority)
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}
		priority = parsed
	}

	t := model.Task{
		ID:        uuid.NewString(),
		Title:     *p.Title,
		Status:    status,
		Priority:  priority,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}

	s.mu.Lock()
	s.tasks[userID] = append(s.tasks[userID], t)
	s.mu.Unlock()

	respond(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, userID string) {
	id := mux.Vars(r)["id"]

	var p taskPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var status *model.Status
	if p.Status != nil {
		parsed, err := model.ParseStatus(*p.Status)
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}
		status = &parsed
	}
	var priority *model.Priority
	if p.Priority != nil {
		parsed, err := model.ParsePriority(*p.Priority)
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}
		priority = &parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks[userID] {
		t := &s.tasks[userID][i]
		if t.ID != id {
			continue
		}
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if status != nil {
			t.Status = *status
		}
		if priority != nil {
			t.Priority = *priority
		}
		if p.DueDate != nil {
			t.DueDate = *p.DueDate
		}
		t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		respond(w, http.StatusOK, *t)
		return
	}
	fail(w, http.StatusNotFound, "task not found")
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, userID string) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.tasks[userID]
	for i := range tasks {
		if tasks[i].ID == id {
			s.tasks[userID] = append(tasks[:i], tasks[i+1:]...)
			respond(w, http.StatusOK, nil)
			return
		}
	}
	fail(w, http.StatusNotFound, "task not found")
}
