package memory

import "sync"

// StepRecord is one transition of an episode.
type StepRecord struct {
	Action     int
	ActionName string
	Reward     float64
	Done       bool
}

// Trajectory is a bounded record of an episode's transitions. When the
// capacity is exceeded the oldest records are dropped.
type Trajectory struct {
	steps    []StepRecord
	capacity int
	mu       sync.RWMutex
}

// NewTrajectory creates a trajectory buffer holding up to capacity records.
func NewTrajectory(capacity int) *Trajectory {
	return &Trajectory{
		steps:    make([]StepRecord, 0, capacity),
		capacity: capacity,
	}
}

// Append records one transition.
func (t *Trajectory) Append(rec StepRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.steps = append(t.steps, rec)
	if t.capacity > 0 && len(t.steps) > t.capacity {
		t.steps = t.steps[1:]
	}
}

// Steps returns a copy of the recorded transitions.
func (t *Trajectory) Steps() []StepRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	steps := make([]StepRecord, len(t.steps))
	copy(steps, t.steps)
	return steps
}

// Len returns the number of recorded transitions.
func (t *Trajectory) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.steps)
}

// Return sums the recorded rewards.
func (t *Trajectory) Return() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total float64
	for _, s := range t.steps {
		total += s.Reward
	}
	return total
}

// Reset clears the buffer for a new episode.
func (t *Trajectory) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = t.steps[:0]
}
