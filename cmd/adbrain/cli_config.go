package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	configpkg "github.com/minhyannv/adbrain-go/pkg/config"
	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/prompts"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigFile = "adbrain.yaml"

// cliFlags holds raw command-line values; they win only when set explicitly.
type cliFlags struct {
	configPath string
	provider   string
	model      string
	baseURL    string
	mode       string
	logFormat  string
	verbose    bool
	plain      bool
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "YAML config file (default ./adbrain.yaml if present, or $ADBRAIN_CONFIG)")
	fs.StringVar(&f.provider, "provider", configpkg.ProviderOpenAI, "Completion provider: openai or gemini")
	fs.StringVar(&f.model, "model", "", "Model name (default depends on provider)")
	fs.StringVar(&f.baseURL, "base-url", "", "Override the provider API base URL")
	fs.StringVar(&f.mode, "mode", "", "Starting mode: strategy, copy, audit or persona")
	fs.StringVar(&f.logFormat, "log-format", configpkg.LogFormatText, "Log format: text or json")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose logging to stderr")
	fs.BoolVar(&f.plain, "plain", false, "Print replies as raw markdown")
}

// resolveConfig layers defaults, config file, environment and explicit flags,
// in that order of precedence.
func resolveConfig(fs *pflag.FlagSet, f cliFlags, getenv configpkg.Env) (configpkg.Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	path, optional := strings.TrimSpace(f.configPath), false
	if path == "" {
		path = strings.TrimSpace(getenv("ADBRAIN_CONFIG"))
	}
	if path == "" {
		path, optional = defaultConfigFile, true
	}
	cfg, err := configpkg.LoadFile(configpkg.DefaultConfig(), path, optional)
	if err != nil {
		return cfg, err
	}

	if fs.Changed("provider") {
		cfg.Provider = f.provider
		getenv = without(getenv, "ADBRAIN_PROVIDER")
	}
	cfg = configpkg.ApplyEnv(cfg, getenv)

	if fs.Changed("model") {
		cfg.Model = f.model
	}
	if fs.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if fs.Changed("mode") {
		cfg.DefaultMode = f.mode
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("plain") {
		cfg.Plain = f.plain
	}

	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return cfg, err
	}
	if cfg.DefaultMode != "" {
		if _, ok := prompts.ParseMode(cfg.DefaultMode); !ok {
			return cfg, fmt.Errorf("unknown mode %q (try: adbrain modes)", cfg.DefaultMode)
		}
	}
	return cfg, nil
}

// startMode returns the configured starting mode, or the default.
func startMode(cfg configpkg.Config) prompts.Mode {
	if m, ok := prompts.ParseMode(cfg.DefaultMode); ok {
		return m
	}
	return prompts.DefaultMode
}

func without(getenv configpkg.Env, key string) configpkg.Env {
	return func(k string) string {
		if k == key {
			return ""
		}
		return getenv(k)
	}
}

// newLogger builds the process logger. Text logs are only written when
// verbose is set; JSON logs always go through zap.
func newLogger(cfg configpkg.Config, w io.Writer) (loggerpkg.Logger, func(), error) {
	if cfg.LogFormat == configpkg.LogFormatJSON {
		level := zapcore.InfoLevel
		if cfg.Verbose {
			level = zapcore.DebugLevel
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			level,
		)
		z := zap.New(core)
		return loggerpkg.NewZapLogger(z), func() { _ = z.Sync() }, nil
	}
	if !cfg.Verbose {
		return loggerpkg.NopLogger{}, func() {}, nil
	}
	return loggerpkg.NewWriterLogger(w), func() {}, nil
}
