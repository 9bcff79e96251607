package commands

import (
	"context"
	"fmt"
	"strconv"

	"taskboard/internal/app"
	"taskboard/internal/model"
)

// loadTasks makes sure the collection is current before a task command
// runs. Remote stores fetch from the server; offline stores are already
// loaded.
func loadTasks(ctx context.Context, a *app.App) error {
	return a.Tasks.Fetch(ctx)
}

// resolveTaskRef turns the 1-based number shown by `taskboard list` into
// a task. Numbers follow insertion order across all columns.
func resolveTaskRef(a *app.App, ref string) (model.Task, error) {
	num, err := strconv.Atoi(ref)
	if err != nil || num < 1 {
		return model.Task{}, fmt.Errorf("invalid task reference: %s", ref)
	}
	tasks := a.Tasks.Tasks()
	if num > len(tasks) {
		return model.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
