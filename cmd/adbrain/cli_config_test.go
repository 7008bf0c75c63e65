package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	configpkg "github.com/minhyannv/adbrain-go/pkg/config"
	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/prompts"
	"github.com/spf13/pflag"
)

func parseFlags(t *testing.T, args ...string) (*pflag.FlagSet, cliFlags) {
	t.Helper()
	var f cliFlags
	fs := pflag.NewFlagSet("adbrain", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs, f
}

func envMap(vars map[string]string) configpkg.Env {
	return func(key string) string { return vars[key] }
}

func TestResolveConfigDefaults(t *testing.T) {
	fs, f := parseFlags(t)
	cfg, err := resolveConfig(fs, f, envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != configpkg.ProviderOpenAI || cfg.Model != configpkg.DefaultOpenAIModel {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if startMode(cfg) != prompts.DefaultMode {
		t.Fatalf("expected default mode, got %q", startMode(cfg))
	}
}

func TestResolveConfigFlagsOverrideEnv(t *testing.T) {
	fs, f := parseFlags(t, "--model", "gpt-4.1", "--mode", "audit")
	cfg, err := resolveConfig(fs, f, envMap(map[string]string{
		"OPENAI_API_KEY": "sk-test",
		"OPENAI_MODEL":   "gpt-4o",
		"ADBRAIN_MODE":   "copy",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Fatalf("expected key from env, got %q", cfg.APIKey)
	}
	if cfg.Model != "gpt-4.1" {
		t.Fatalf("expected flag model, got %q", cfg.Model)
	}
	if startMode(cfg) != prompts.ModeAdAudit {
		t.Fatalf("expected audit mode, got %q", startMode(cfg))
	}
}

func TestResolveConfigProviderFlagMasksEnvProvider(t *testing.T) {
	fs, f := parseFlags(t, "--provider", "gemini")
	cfg, err := resolveConfig(fs, f, envMap(map[string]string{
		"ADBRAIN_PROVIDER": "openai",
		"OPENAI_API_KEY":   "sk-openai",
		"GEMINI_API_KEY":   "gm-key",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != configpkg.ProviderGemini {
		t.Fatalf("expected gemini provider, got %q", cfg.Provider)
	}
	if cfg.APIKey != "gm-key" {
		t.Fatalf("expected gemini key, got %q", cfg.APIKey)
	}
	if cfg.Model != configpkg.DefaultGeminiModel {
		t.Fatalf("expected gemini default model, got %q", cfg.Model)
	}
}

func TestResolveConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adbrain.yaml")
	data := "provider: gemini\nmodel: gemini-2.0-flash\ndefault_mode: persona\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fs, f := parseFlags(t, "--config", path)
	cfg, err := resolveConfig(fs, f, envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != configpkg.ProviderGemini || cfg.Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if startMode(cfg) != prompts.ModePersonaOffer {
		t.Fatalf("expected persona mode, got %q", startMode(cfg))
	}
}

func TestResolveConfigMissingExplicitFile(t *testing.T) {
	fs, f := parseFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := resolveConfig(fs, f, envMap(nil)); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestResolveConfigRejectsUnknownMode(t *testing.T) {
	fs, f := parseFlags(t, "--mode", "billboards")
	_, err := resolveConfig(fs, f, envMap(nil))
	if err == nil || !strings.Contains(err.Error(), "unknown mode") {
		t.Fatalf("expected unknown mode error, got %v", err)
	}
}

func TestResolveConfigRejectsUnknownProvider(t *testing.T) {
	fs, f := parseFlags(t, "--provider", "claude")
	if _, err := resolveConfig(fs, f, envMap(nil)); err == nil {
		t.Fatal("expected unknown provider error")
	}
}

func TestNewLoggerQuietUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	cfg := configpkg.Normalize(configpkg.DefaultConfig())
	logger, sync, err := newLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sync()
	if _, ok := logger.(loggerpkg.NopLogger); !ok {
		t.Fatalf("expected NopLogger, got %T", logger)
	}

	cfg.Verbose = true
	logger, _, err = newLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello", map[string]any{"k": "v"})
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected text log output, got %q", buf.String())
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := configpkg.Normalize(configpkg.Config{LogFormat: configpkg.LogFormatJSON})
	logger, sync, err := newLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("session started", map[string]any{"mode": "strategy"})
	logger.Debug("hidden", nil)
	sync()

	out := buf.String()
	if !strings.Contains(out, `"msg":"session started"`) {
		t.Fatalf("expected json message, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug output should be filtered without verbose: %q", out)
	}
}
