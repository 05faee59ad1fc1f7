package http

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
)

type Handler struct {
	processor *usecase.Processor
	log       *slog.Logger
}

func NewHandler(p *usecase.Processor, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{processor: p, log: log}
}

// Register mounts the session API and the HTML view on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/healthz", h.Health)

	api := r.Group("/api/v1/sessions")
	api.Post("/", h.StartSession)
	api.Get("/:id", h.GetSession)
	api.Delete("/:id", h.EndSession)
	api.Post("/:id/operations", h.ApplyOperation)
	api.Post("/:id/reset", h.ResetSession)
	api.Post("/:id/generate", h.Generate)
	api.Get("/:id/resume", h.ResumeTree)

	r.Get("/sessions/:id/resume", h.ResumePage)
}

type generateReq struct {
	UserDescription string `json:"userDescription"`
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) StartSession(c *fiber.Ctx) error {
	s, err := h.processor.Start(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	s, err := h.processor.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) EndSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.processor.End(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ApplyOperation(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var op usecase.Operation
	if err := c.BodyParser(&op); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	s, err := h.processor.Apply(c.UserContext(), id, op)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) ResetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	s, err := h.processor.Reset(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req generateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if strings.TrimSpace(req.UserDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userDescription is required"})
	}

	s, err := h.processor.Generate(c.UserContext(), id, req.UserDescription)
	if err != nil && s != nil && isGenerationFailure(err) {
		// the form stays usable; the caller gets the unchanged document back
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "session": s})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) ResumeTree(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	tree, err := h.processor.Render(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tree)
}

func (h *Handler) ResumePage(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	tree, err := h.processor.Render(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	var buf bytes.Buffer
	if err := render.HTML(&buf, tree); err != nil {
		return h.fail(c, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

var errBadSessionID = errors.New("invalid session id")

func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errBadSessionID
	}
	return id, nil
}

func isGenerationFailure(err error) bool {
	return errors.Is(err, ai.ErrTransport) || errors.Is(err, ai.ErrMalformedResponse)
}

// fail maps domain errors onto status codes. Anything unrecognised is a 500.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errBadSessionID),
		errors.Is(err, usecase.ErrIndexOutOfRange),
		errors.Is(err, usecase.ErrUnknownSection),
		errors.Is(err, usecase.ErrUnknownField),
		errors.Is(err, usecase.ErrUnknownCategory),
		errors.Is(err, usecase.ErrUnknownOperation):
		status = fiber.StatusBadRequest
	case errors.Is(err, repository.ErrSessionNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrGenerationInFlight):
		status = fiber.StatusConflict
	case isGenerationFailure(err):
		status = fiber.StatusBadGateway
	}
	if status == fiber.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
