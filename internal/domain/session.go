package domain

import (
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/model"
)

const (
	StatusIdle       = "idle"
	StatusGenerating = "generating"
)

// FormSession is one user's form from start until navigation away.
type FormSession struct {
	ID         uuid.UUID    `json:"id"`
	Document   model.Resume `json:"document"`
	Status     string       `json:"status"`
	Generating bool         `json:"generating"`
	LastError  string       `json:"lastError,omitempty"`
	Think      string       `json:"think,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Snapshot returns a copy that shares no memory with s.
func (s *FormSession) Snapshot() *FormSession {
	cp := *s
	cp.Document = s.Document.Clone()
	return &cp
}
