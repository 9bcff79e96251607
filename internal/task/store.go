// Package task owns the in-memory task collection. It runs in one of two
// modes: remote-backed, where the API is the source of truth and local
// state is a mirror, or local-only, where the collection lives entirely in
// the persistent local store. The collection keeps insertion order; board
// columns are a pure filter over status, never a structural move.
package task

import (
	"context"
	"strconv"
	"sync"
	"time"

	"taskboard/internal/api"
	"taskboard/internal/model"
	"taskboard/internal/store"
)

// Draft is the input for creating a task. Status defaults to todo,
// priority to medium.
type Draft struct {
	Title       string
	Description string
	Status      model.Status
	Priority    model.Priority
	DueDate     string
}

// Update is a partial task update. Nil fields are left untouched and are
// stripped from the remote payload.
type Update struct {
	Title       *string
	Description *string
	Status      *model.Status
	Priority    *model.Priority
	DueDate     *string
}

// Store holds the task collection.
type Store struct {
	client *api.Client // nil in local-only mode
	local  *store.Store

	mu      sync.RWMutex
	tasks   []model.Task
	lastErr string
}

// NewRemote creates a remote-backed store. The collection starts empty;
// call Fetch to populate it.
func NewRemote(client *api.Client, local *store.Store) *Store {
	return &Store{client: client, local: local}
}

// NewLocal creates a local-only store, loading the persisted collection.
// First run seeds a sample task so the board isn't blank.
func NewLocal(local *store.Store) *Store {
	s := &Store{local: local}
	if tasks, ok := local.Tasks(); ok {
		s.tasks = tasks
		return s
	}
	s.tasks = []model.Task{sampleTask()}
	local.SaveTasks(s.tasks)
	return s
}

func sampleTask() model.Task {
	return model.Task{
		ID:          newLocalID(nil),
		Title:       "Plan the week",
		Description: "Add your own tasks with `taskboard add`, then move them across the board as you go.",
		Status:      model.StatusTodo,
		Priority:    model.PriorityMedium,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
}

// remote reports whether this store is backed by the API.
func (s *Store) remote() bool { return s.client != nil }

// Fetch replaces the collection with the server's task list. Local-only
// stores are already populated and return immediately. On failure the
// previous collection is left untouched.
func (s *Store) Fetch(ctx context.Context) error {
	if !s.remote() {
		return nil
	}

	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		s.setError(api.Message(err))
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Add creates a task and appends it to the collection. In remote mode the
// server record is merged with the client-supplied priority and due date,
// which older servers don't echo back. Failure leaves the collection
// unchanged.
func (s *Store) Add(ctx context.Context, draft Draft) (model.Task, error) {
	if draft.Status == "" {
		draft.Status = model.StatusTodo
	}
	if draft.Priority == "" {
		draft.Priority = model.PriorityMedium
	}

	var created model.Task
	if s.remote() {
		got, err := s.client.CreateTask(ctx, api.CreateTaskRequest{
			Title:       draft.Title,
			Description: draft.Description,
			Status:      string(draft.Status),
			Priority:    string(draft.Priority),
			DueDate:     draft.DueDate,
		})
		if err != nil {
			s.setError(api.Message(err))
			return model.Task{}, err
		}
		created = got
		created.Priority = draft.Priority
		if draft.DueDate != "" {
			created.DueDate = draft.DueDate
		}
	} else {
		s.mu.RLock()
		id := newLocalID(s.tasks)
		s.mu.RUnlock()
		created = model.Task{
			ID:          id,
			Title:       draft.Title,
			Description: draft.Description,
			Status:      draft.Status,
			Priority:    draft.Priority,
			DueDate:     draft.DueDate,
			CreatedAt:   time.Now().Format(time.RFC3339),
		}
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.lastErr = ""
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !s.remote() {
		s.local.SaveTasks(snapshot)
	}
	return created, nil
}

// UpdateTask applies a partial update to the task with the given id. An
// unknown id is a silent no-op. In remote mode only the defined fields go
// over the wire; the server's update timestamp is merged back in.
func (s *Store) UpdateTask(ctx context.Context, id string, upd Update) error {
	if s.indexOf(id) < 0 {
		return nil
	}

	updatedAt := time.Now().Format(time.RFC3339)
	if s.remote() {
		req := api.UpdateTaskRequest{
			Title:       upd.Title,
			Description: upd.Description,
		}
		if upd.Status != nil {
			st := string(*upd.Status)
			req.Status = &st
		}
		if upd.Priority != nil {
			p := string(*upd.Priority)
			req.Priority = &p
		}
		if upd.DueDate != nil {
			req.DueDate = upd.DueDate
		}
		got, err := s.client.UpdateTask(ctx, id, req)
		if err != nil {
			s.setError(api.Message(err))
			return err
		}
		if got.UpdatedAt != "" {
			updatedAt = got.UpdatedAt
		}
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		if upd.DueDate != nil {
			t.DueDate = *upd.DueDate
		}
		t.UpdatedAt = updatedAt
		break
	}
	s.lastErr = ""
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !s.remote() {
		s.local.SaveTasks(snapshot)
	}
	return nil
}

// Delete removes the task with the given id. An unknown id is a silent
// no-op. In remote mode the local record goes away only after server
// confirmation.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s.indexOf(id) < 0 {
		return nil
	}

	if s.remote() {
		if err := s.client.DeleteTask(ctx, id); err != nil {
			s.setError(api.Message(err))
			return err
		}
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.lastErr = ""
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !s.remote() {
		s.local.SaveTasks(snapshot)
	}
	return nil
}

// Tasks returns the collection in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// ByStatus returns the tasks in one board column, preserving insertion
// order.
func (s *Store) ByStatus(status model.Status) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Err returns the last operation error message, empty when none.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) snapshotLocked() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) indexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// newLocalID derives an id from the current time, bumping past collisions
// when two tasks land in the same millisecond.
func newLocalID(existing []model.Task) string {
	ms := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		taken := false
		for _, t := range existing {
			if t.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		ms++
	}
}
