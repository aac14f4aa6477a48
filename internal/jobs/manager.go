package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// ErrRunAlreadyActive is returned when starting a second active run.
var ErrRunAlreadyActive = errors.New("run already active")

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunStatusIdle    RunStatus = "idle"
	RunStatusRunning RunStatus = "running"
	RunStatusDone    RunStatus = "done"
	RunStatusFailed  RunStatus = "failed"
)

// Run is a snapshot of one pipeline run.
type Run struct {
	ID         string            `json:"id,omitempty"`
	Status     RunStatus         `json:"status"`
	Stage      models.Stage      `json:"stage,omitempty"`
	StartedAt  time.Time         `json:"startedAt,omitempty"`
	FinishedAt time.Time         `json:"finishedAt,omitempty"`
	Result     *models.RunResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Manager tracks the single allowed active run.
type Manager struct {
	mu      sync.RWMutex
	current Run
}

// NewManager creates a manager in idle state.
func NewManager() *Manager {
	return &Manager{current: Run{Status: RunStatusIdle}}
}

// Start registers a new running run.
func (m *Manager) Start(id string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Status == RunStatusRunning {
		return ErrRunAlreadyActive
	}
	m.current = Run{ID: id, Status: RunStatusRunning, StartedAt: now}
	return nil
}

// SetStage records the stage the active run entered. Ignored when idle.
func (m *Manager) SetStage(stage models.Stage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.Status == RunStatusRunning {
		m.current.Stage = stage
	}
}

// Finish closes the active run. A run that returned an error is failed;
// a NoPapers result is done.
func (m *Manager) Finish(result models.RunResult, err error, now time.Time) Run {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.FinishedAt = now
	m.current.Result = &result
	if err != nil {
		m.current.Status = RunStatusFailed
		m.current.Error = err.Error()
	} else {
		m.current.Status = RunStatusDone
	}
	return m.current
}

// Current returns a snapshot of the current run.
func (m *Manager) Current() Run {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsRunning reports whether a run is active.
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Status == RunStatusRunning
}
