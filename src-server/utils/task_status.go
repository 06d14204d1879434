package utils

import "time"

// TaskState is a snapshot of one scheduled task.
type TaskState struct {
	Name    string
	NextRun time.Time
	LastRun time.Time // zero until the first run finishes
	LastErr error
	Runs    int
}

type TaskStatus interface {
	State() TaskState
}

// AddTask exposes a scheduled task to the status command.
func (as *AppState) AddTask(task TaskStatus) {
	as.tasksMu.Lock()
	defer as.tasksMu.Unlock()
	as.tasks = append(as.tasks, task)
}

// TaskStates returns a snapshot of every registered task, in registration order.
func (as *AppState) TaskStates() []TaskState {
	as.tasksMu.RLock()
	defer as.tasksMu.RUnlock()
	states := make([]TaskState, len(as.tasks))
	for i, task := range as.tasks {
		states[i] = task.State()
	}
	return states
}
