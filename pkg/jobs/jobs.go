// Package jobs tracks progress of long-running operations for polling clients.
// The tracker is an in-memory map of jobs keyed by UUID; pipelines publish
// updates through a Job and HTTP handlers read point-in-time snapshots.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job status values.
const (
	StatusInitializing = "initializing"
	StatusProcessing   = "processing"
	StatusCompleted    = "completed"
	StatusFailed       = "failed"
)

// Snapshot is a point-in-time copy of a job's state, safe to serialize.
type Snapshot struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	CurrentPage int        `json:"current_page"`
	TotalPages  int        `json:"total_pages"`
	Percentage  int        `json:"percentage"`
	Pages       []any      `json:"pages,omitempty"`
	Documents   []any      `json:"documents,omitempty"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Job accumulates progress updates for one operation.
type Job struct {
	mu          sync.Mutex
	id          uuid.UUID
	status      string
	message     string
	currentPage int
	totalPages  int
	pages       []any
	documents   []any
	err         string
	startedAt   time.Time
	completedAt *time.Time
}

// ID returns the job's identifier.
func (j *Job) ID() uuid.UUID {
	return j.id
}

// Progress records the current position within the operation.
func (j *Job) Progress(current, total int, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = StatusProcessing
	j.currentPage = current
	j.totalPages = total
	if message != "" {
		j.message = message
	}
}

// Note updates the job's message without touching progress counters.
func (j *Job) Note(message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.message = message
}

// AppendPage records a processed-page detail for later inspection.
func (j *Job) AppendPage(info any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pages = append(j.pages, info)
}

// AppendDocument records an identified output document.
func (j *Job) AppendDocument(info any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.documents = append(j.documents, info)
}

// Complete marks the job finished.
func (j *Job) Complete() {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	j.status = StatusCompleted
	j.message = "processing complete"
	j.currentPage = j.totalPages
	j.completedAt = &now
}

// Fail marks the job failed with the given error.
func (j *Job) Fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	j.status = StatusFailed
	j.err = err.Error()
	j.message = "processing failed"
	j.completedAt = &now
}

// Snapshot returns a copy of the job's current state.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	percentage := 0
	if j.totalPages > 0 {
		percentage = j.currentPage * 100 / j.totalPages
	}
	if j.status == StatusCompleted {
		percentage = 100
	}

	return Snapshot{
		ID:          j.id,
		Status:      j.status,
		Message:     j.message,
		CurrentPage: j.currentPage,
		TotalPages:  j.totalPages,
		Percentage:  percentage,
		Pages:       append([]any(nil), j.pages...),
		Documents:   append([]any(nil), j.documents...),
		Error:       j.err,
		StartedAt:   j.startedAt,
		CompletedAt: j.completedAt,
	}
}

// Tracker holds active and recently finished jobs.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[uuid.UUID]*Job)}
}

// Create registers and returns a new job in the initializing state.
func (t *Tracker) Create() *Job {
	job := &Job{
		id:        uuid.New(),
		status:    StatusInitializing,
		message:   "initializing",
		startedAt: time.Now(),
	}

	t.mu.Lock()
	t.jobs[job.id] = job
	t.mu.Unlock()

	return job
}

// Get returns the job with the given ID, or nil if unknown.
func (t *Tracker) Get(id uuid.UUID) *Job {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.jobs[id]
}

// Remove drops a job from tracking.
func (t *Tracker) Remove(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, id)
}
