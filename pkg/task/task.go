// Package task holds the per-episode goal definitions: each variant turns a
// pair of world snapshots into a reward and termination signal.
package task

import (
	"errors"
	"fmt"

	"github.com/agentsim/thorgym/pkg/config"
	"github.com/agentsim/thorgym/pkg/core"
)

// ErrUnknownTask indicates the configured task name has no registered
// constructor. Fatal at episode creation, distinct from action errors.
var ErrUnknownTask = errors.New("unknown task")

// ErrInvalidTaskParams indicates the task name resolved but its goal
// parameters are misconfigured.
var ErrInvalidTaskParams = errors.New("invalid task parameters")

// Task is the goal/reward state machine for one episode.
type Task interface {
	// Reset reinitializes goal-tracking state for a new episode.
	Reset()
	// TransitionReward computes (reward, done) from the previous and new
	// snapshots. It never mutates its arguments; internal counters advance
	// exactly once per call.
	TransitionReward(prev, cur *core.Snapshot) (float64, bool)
}

// Constructor builds a task variant from configuration.
type Constructor func(cfg *config.Config) (Task, error)

var registry = map[string]Constructor{}

// Register adds a task constructor under the given name. Called from
// variant init functions.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// New selects a task variant by the configured name. An unregistered name
// fails with ErrUnknownTask.
func New(cfg *config.Config) (Task, error) {
	ctor, ok := registry[cfg.Task.TaskName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, cfg.Task.TaskName)
	}
	return ctor(cfg)
}
