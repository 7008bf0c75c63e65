// Package gateway performs one synchronous completion against an external
// text-generation service.
package gateway

import (
	"context"
	"errors"
	"fmt"

	configpkg "github.com/minhyannv/adbrain-go/pkg/config"
	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
)

// Gateway submits a transcript and returns the text of the top reply. Failures
// are always *Error values. Implementations do not retry.
type Gateway interface {
	Complete(ctx context.Context, messages []transcript.Message) (string, error)
}

// Func adapts an ordinary function to Gateway.
type Func func(ctx context.Context, messages []transcript.Message) (string, error)

// Complete calls f. Non-*Error failures are classified as ServiceError.
func (f Func) Complete(ctx context.Context, messages []transcript.Message) (string, error) {
	if err := checkTranscript(messages); err != nil {
		return "", err
	}
	text, err := f(ctx, messages)
	if err != nil {
		return "", classify(err)
	}
	return text, nil
}

var errNoSystemMessage = errors.New("transcript has no system message")

func checkTranscript(messages []transcript.Message) error {
	for _, m := range messages {
		if m.Role == transcript.RoleSystem {
			return nil
		}
	}
	return serviceError("invalid request", errNoSystemMessage)
}

// New builds the gateway for cfg.Provider.
func New(cfg configpkg.Config, logger loggerpkg.Logger) (Gateway, error) {
	cfg = configpkg.Normalize(cfg)
	opts := Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Logger:  logger,
		Verbose: cfg.Verbose,
	}
	switch cfg.Provider {
	case configpkg.ProviderOpenAI:
		return NewOpenAI(opts), nil
	case configpkg.ProviderGemini:
		return NewGemini(opts), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Options configures a provider backend.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  loggerpkg.Logger
	Verbose bool
}
