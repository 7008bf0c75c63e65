package session

import (
	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/prompts"
)

// Option configures optional dependencies for Controller.
type Option func(*controllerDeps)

type controllerDeps struct {
	logger      loggerpkg.Logger
	verbose     bool
	defaultMode prompts.Mode
	newID       func() string
	lazySeed    bool
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *controllerDeps) {
		d.logger = l
	}
}

// WithVerbose enables debug logging.
func WithVerbose(v bool) Option {
	return func(d *controllerDeps) {
		d.verbose = v
	}
}

// WithDefaultMode sets the mode the session is seeded with.
func WithDefaultMode(m prompts.Mode) Option {
	return func(d *controllerDeps) {
		d.defaultMode = m
	}
}

// WithIDGenerator replaces the session ID source.
func WithIDGenerator(fn func() string) Option {
	return func(d *controllerDeps) {
		d.newID = fn
	}
}

// WithLazySeed leaves the transcript empty until the first submission or mode
// change instead of seeding it in New.
func WithLazySeed() Option {
	return func(d *controllerDeps) {
		d.lazySeed = true
	}
}
