package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/pkg/ai"
)

// ErrGenerationInFlight is returned when a session already waits for a
// generation response.
var ErrGenerationInFlight = errors.New("generation already in progress")

type Generator interface {
	Generate(ctx context.Context, description string) (*ai.Result, error)
}

type SessionsRepo interface {
	Save(ctx context.Context, s *domain.FormSession) error
	Get(ctx context.Context, id uuid.UUID) (*domain.FormSession, error)
	Update(ctx context.Context, id uuid.UUID, fn func(s *domain.FormSession) error) (*domain.FormSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Processor runs form-session actions: edits, resets, generation and
// rendering. The session repository serializes all writes.
type Processor struct {
	generator Generator
	repo      SessionsRepo
	labels    map[string]string
	log       *slog.Logger
}

func NewProcessor(g Generator, repo SessionsRepo, labels map[string]string, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{generator: g, repo: repo, labels: labels, log: log}
}

// Start opens a session holding the default document.
func (p *Processor) Start(ctx context.Context) (*domain.FormSession, error) {
	now := time.Now()
	s := &domain.FormSession{
		ID:        uuid.New(),
		Document:  model.Default(),
		Status:    domain.StatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.repo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	p.log.Info("session started", "session", s.ID)
	return s, nil
}

func (p *Processor) Get(ctx context.Context, id uuid.UUID) (*domain.FormSession, error) {
	return p.repo.Get(ctx, id)
}

// Apply runs one form operation against the session document. A failed
// operation leaves the document as it was.
func (p *Processor) Apply(ctx context.Context, id uuid.UUID, op Operation) (*domain.FormSession, error) {
	s, err := p.repo.Update(ctx, id, func(s *domain.FormSession) error {
		doc, err := Apply(s.Document, op)
		if err != nil {
			return err
		}
		s.Document = doc
		return nil
	})
	if errors.Is(err, ErrIndexOutOfRange) {
		// the UI addressed a row it does not have
		p.log.Error("operation out of range", "session", id, "op", op.Op, "section", op.Section, "index", op.Index, "error", err)
	}
	return s, err
}

// Reset puts the default document back. An in-flight generation is not
// cancelled; its result lands on the reset document.
func (p *Processor) Reset(ctx context.Context, id uuid.UUID) (*domain.FormSession, error) {
	return p.Apply(ctx, id, Operation{Op: OpReset})
}

// Generate asks the generation service to fill the form from description
// and merges the answer into the session document as it stands when the
// answer arrives. Only one generation per session may be outstanding. The
// request is not tied to ctx cancellation: once started it runs to
// completion or to the HTTP client's timeout. On failure the document is
// untouched and the reason is kept in LastError.
func (p *Processor) Generate(ctx context.Context, id uuid.UUID, description string) (*domain.FormSession, error) {
	_, err := p.repo.Update(ctx, id, func(s *domain.FormSession) error {
		if s.Generating {
			return ErrGenerationInFlight
		}
		s.Generating = true
		s.Status = domain.StatusGenerating
		return nil
	})
	if err != nil {
		return nil, err
	}

	bg := context.WithoutCancel(ctx)
	start := time.Now()
	returned := false
	defer func() {
		if !returned {
			p.abandonGeneration(bg, id)
		}
	}()
	res, genErr := p.generator.Generate(bg, description)
	returned = true

	s, err := p.repo.Update(bg, id, func(s *domain.FormSession) error {
		s.Generating = false
		s.Status = domain.StatusIdle
		if genErr != nil {
			s.LastError = genErr.Error()
			return nil
		}
		s.LastError = ""
		if res == nil {
			return nil
		}
		s.Document = Merge(s.Document, res.Data)
		s.Think = res.Think
		return nil
	})
	if err != nil {
		p.log.Warn("generation finished for a closed session", "session", id, "error", err)
		if genErr != nil {
			return nil, fmt.Errorf("generate resume: %w", genErr)
		}
		return nil, err
	}
	if genErr != nil {
		p.log.Warn("generation failed", "session", id, "elapsed", time.Since(start), "error", genErr)
		return s, fmt.Errorf("generate resume: %w", genErr)
	}
	p.log.Info("generation merged", "session", id, "elapsed", time.Since(start))
	return s, nil
}

// abandonGeneration clears the in-flight flag when the generator never
// returned, so the session accepts a new generate request.
func (p *Processor) abandonGeneration(ctx context.Context, id uuid.UUID) {
	_, err := p.repo.Update(ctx, id, func(s *domain.FormSession) error {
		s.Generating = false
		s.Status = domain.StatusIdle
		s.LastError = "generation aborted"
		return nil
	})
	p.log.Error("generation aborted", "session", id, "error", err)
}

// Render returns the display tree of the session document.
func (p *Processor) Render(ctx context.Context, id uuid.UUID) (render.Tree, error) {
	s, err := p.repo.Get(ctx, id)
	if err != nil {
		return render.Tree{}, err
	}
	return render.RenderWith(&s.Document, p.labels), nil
}

// End closes the session.
func (p *Processor) End(ctx context.Context, id uuid.UUID) error {
	if err := p.repo.Delete(ctx, id); err != nil {
		return err
	}
	p.log.Info("session ended", "session", id)
	return nil
}
