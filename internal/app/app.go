// Package app wires the client, session manager, and task store into one
// explicit application-state object with a defined init and teardown.
package app

import (
	"context"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/session"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

// App holds the application state shared by all commands.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Local   *store.Store
	Session *session.Manager
	Tasks   *task.Store
}

// New assembles an App from config. Offline config gets a local-only task
// store; otherwise the store mirrors the remote API.
func New(cfg *config.Config) *App {
	client := api.New(cfg.BaseURL)
	local := store.New(cfg)

	a := &App{
		Config:  cfg,
		Client:  client,
		Local:   local,
		Session: session.New(client, local),
	}
	if cfg.Offline {
		a.Tasks = task.NewLocal(local)
	} else {
		a.Tasks = task.NewRemote(client, local)
	}
	return a
}

// Init runs the session startup reconciliation.
func (a *App) Init(ctx context.Context) {
	a.Session.Init(ctx)
}

// Reset drops all in-memory session state. Intended for tests.
func (a *App) Reset() {
	a.Session.Reset()
}
