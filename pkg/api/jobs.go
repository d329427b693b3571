// Package api provides the HTTP service for toric.
//
// Completion runs can take a while, so the API is built around jobs:
// POST /v1/jobs accepts solver options, starts the run in the background
// and returns a job ID; GET /v1/jobs/{id} reports progress and results.
// The computed basis is additionally served in 4ti2 text form for
// interoperability with other lattice tools.
//
// Job records live in a Store. Two backends are provided:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for multi-instance deployments
package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/umonteiro/toric/pkg/solver"
)

// Status is the lifecycle state of a job.
type Status string

// Job states.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job records one completion request and its outcome.
type Job struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	Status    Status         `json:"status" bson:"status"`
	Options   solver.Options `json:"options" bson:"options"`
	Result    *solver.Result `json:"result,omitempty" bson:"result,omitempty"`
	Error     string         `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for job storage backends.
type Store interface {
	// Get retrieves a job by ID.
	// Returns nil, nil if the job doesn't exist.
	Get(ctx context.Context, id string) (*Job, error)

	// Put stores or replaces a job.
	Put(ctx context.Context, job *Job) error

	// List returns jobs sorted by creation time, newest first.
	// A positive limit caps the number of jobs returned.
	List(ctx context.Context, limit int) ([]*Job, error)

	// Delete removes a job. Deleting a missing job is not an error.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-memory job store for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*Job)}
}

// Get retrieves a job by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

// Put stores or replaces a job.
func (s *MemoryStore) Put(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

// List returns jobs sorted by creation time, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		cp := *job
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a job.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
