package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"resume-builder/internal/model"
)

// GeneratePath is the generation endpoint relative to the service base URL.
const GeneratePath = "/api/v1/resume/generate"

// maxResponseBytes caps how much of a reply is read.
const maxResponseBytes = 4 << 20

var (
	// ErrTransport means the request did not complete: it could not be
	// sent, no response arrived or the service answered with a non-2xx status.
	ErrTransport = errors.New("generation request failed")
	// ErrMalformedResponse means a response arrived but carried no usable
	// resume data.
	ErrMalformedResponse = errors.New("malformed generation response")
)

// StatusError reports a non-2xx answer from the generation service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation service returned status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrTransport }

// Result is a successful generation: the partial document to merge and the
// model's reasoning text when the service sent one.
type Result struct {
	Data  *model.Partial
	Think string
}

// Client calls the external generation service that turns a free-text
// description into structured resume data.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger
}

// NewClient returns a client for baseURL. The timeout is the whole
// request/response budget; zero means none.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  slog.Default(),
	}
}

type generateReq struct {
	UserDescription string `json:"userDescription"`
}

// Generate sends description to the service once and returns the coerced
// partial document. It never retries. Errors wrap ErrTransport or
// ErrMalformedResponse.
func (c *Client) Generate(ctx context.Context, description string) (*Result, error) {
	log := c.logger()

	body, err := json.Marshal(generateReq{UserDescription: description})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrTransport, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	log.Debug("generation response",
		"status", resp.StatusCode,
		"bytes", len(respBytes),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(respBytes), 256)}
	}

	var env envelope
	if err := json.Unmarshal(respBytes, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	data, think, err := decodeData(env.Data)
	if err != nil {
		return nil, err
	}
	if env.Think != nil {
		think = strings.TrimSpace(*env.Think)
	}
	if think != "" {
		log.Debug("generation reasoning", "think", truncate(think, 2000))
	}

	partial, err := model.NewPartialFromMap(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &Result{Data: partial, Think: think}, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
