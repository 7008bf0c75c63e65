// Package session owns the single conversation of a running front-end: its
// mode, its transcript and every exchange with the completion gateway.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minhyannv/adbrain-go/pkg/gateway"
	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/prompts"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
)

// State is the controller's request state.
type State int

const (
	// Idle means no request is pending.
	Idle State = iota
	// AwaitingReply means a completion is in flight.
	AwaitingReply
)

func (s State) String() string {
	if s == AwaitingReply {
		return "awaiting_reply"
	}
	return "idle"
}

var (
	// ErrBusy is returned when input arrives while a reply is pending. The
	// front-end is expected to prevent this.
	ErrBusy = errors.New("a reply is already pending")
	// ErrEmptyInput is returned for blank submissions.
	ErrEmptyInput = errors.New("user input is required")
)

// Controller binds one mode to one transcript and mediates completions.
type Controller struct {
	gw gateway.Gateway

	mu         sync.Mutex
	id         string
	mode       prompts.Mode
	state      State
	transcript *transcript.Transcript

	logger  loggerpkg.Logger
	verbose bool
}

// New creates a controller in the default mode. The transcript is seeded
// immediately unless WithLazySeed is given.
func New(gw gateway.Gateway, opts ...Option) (*Controller, error) {
	if gw == nil {
		return nil, errors.New("gateway is required")
	}
	deps := controllerDeps{
		logger:      loggerpkg.NopLogger{},
		defaultMode: prompts.DefaultMode,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	c := &Controller{
		gw:         gw,
		id:         deps.newID(),
		state:      Idle,
		transcript: transcript.New(),
		logger:     deps.logger,
		verbose:    deps.verbose,
	}
	if deps.lazySeed {
		c.mode = deps.defaultMode
	} else if err := c.SetMode(deps.defaultMode); err != nil {
		return nil, err
	}
	loggerpkg.Info(c.logger, "session started", map[string]any{
		"session_id": c.id,
		"mode":       c.mode,
	})
	return c, nil
}

// ID returns the session identifier used in logs.
func (c *Controller) ID() string {
	return c.id
}

// Modes returns the selectable modes in display order.
func (c *Controller) Modes() []prompts.Mode {
	return prompts.Modes()
}

// Mode returns the active mode.
func (c *Controller) Mode() prompts.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// State returns the current request state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetMode switches mode and restarts the conversation with the new mode's
// system prompt. Unrecognized modes are accepted and seed the base persona.
func (c *Controller) SetMode(mode prompts.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrBusy
	}

	previous := c.mode
	c.mode = mode
	c.transcript.ResetAndSeed(prompts.BuildSystemPrompt(mode))

	fields := map[string]any{
		"session_id": c.id,
		"from":       previous,
		"to":         mode,
	}
	if !mode.Valid() {
		loggerpkg.Warn(c.logger, "unrecognized mode, using base prompt", fields)
		return nil
	}
	loggerpkg.Debug(c.verbose, c.logger, "mode changed", fields)
	return nil
}

// Reset restarts the conversation in the current mode.
func (c *Controller) Reset() error {
	return c.SetMode(c.Mode())
}

// Submit appends the user's text, asks the gateway for a reply and appends
// either the reply or a visible failure message. Gateway failures never reach
// the caller; only ErrBusy and ErrEmptyInput are returned.
func (c *Controller) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.state != Idle {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.transcript.Seeded() {
		c.transcript.ResetAndSeed(prompts.BuildSystemPrompt(c.mode))
		loggerpkg.Debug(c.verbose, c.logger, "transcript seeded", map[string]any{
			"session_id": c.id,
			"mode":       c.mode,
		})
	}
	c.transcript.Append(transcript.RoleUser, text)
	request := c.transcript.Exchange()
	c.state = AwaitingReply
	mode := c.mode
	c.mu.Unlock()

	loggerpkg.Debug(c.verbose, c.logger, "submitting", map[string]any{
		"session_id": c.id,
		"mode":       mode,
		"bytes":      len(text),
		"messages":   len(request),
	})
	reply, err := c.gw.Complete(ctx, request)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	if err != nil {
		loggerpkg.Error(c.logger, "completion failed", map[string]any{
			"session_id": c.id,
			"mode":       mode,
			"error":      err.Error(),
		})
		c.transcript.AppendSurrogate(FormatFailure(err))
		return nil
	}
	c.transcript.Append(transcript.RoleAssistant, reply)
	loggerpkg.Debug(c.verbose, c.logger, "reply received", map[string]any{
		"session_id": c.id,
		"bytes":      len(reply),
		"messages":   c.transcript.Len(),
	})
	return nil
}

// Transcript returns a copy of the conversation for rendering. System messages
// are included; hiding them is up to the front-end.
func (c *Controller) Transcript() []transcript.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.Snapshot()
}

// FormatFailure renders a completion failure as surrogate message content.
func FormatFailure(err error) string {
	return fmt.Sprintf("%s\n\n`%v`\n\nCheck your API key / quota.", transcript.SurrogateMarker, err)
}
