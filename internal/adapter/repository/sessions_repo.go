package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionsRepo keeps form sessions in memory. Every write goes through one
// lock, so updates to a session are applied one at a time.
type SessionsRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.FormSession
	now      func() time.Time
}

func NewSessionsRepo() *SessionsRepo {
	return &SessionsRepo{sessions: map[uuid.UUID]*domain.FormSession{}, now: time.Now}
}

// Save inserts s or replaces the session with the same id.
func (r *SessionsRepo) Save(ctx context.Context, s *domain.FormSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s.Snapshot()
	return nil
}

// Get returns a copy of the session.
func (r *SessionsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.FormSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Snapshot(), nil
}

// Update runs fn on a working copy of the session while holding the store
// lock. The copy is committed only when fn returns nil; the committed state
// is returned.
func (r *SessionsRepo) Update(ctx context.Context, id uuid.UUID, fn func(s *domain.FormSession) error) (*domain.FormSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	work := cur.Snapshot()
	if err := fn(work); err != nil {
		return cur.Snapshot(), err
	}
	work.ID = id
	work.UpdatedAt = r.now()
	r.sessions[id] = work
	return work.Snapshot(), nil
}

// Delete forgets the session. Deleting an unknown id is not an error.
func (r *SessionsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Len reports how many sessions are open.
func (r *SessionsRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
