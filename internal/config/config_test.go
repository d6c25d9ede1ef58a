package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

type fakeCmd struct {
	fs *pflag.FlagSet
}

func (f fakeCmd) Flags() *pflag.FlagSet { return f.fs }

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tone.SampleRate != 8000 {
		t.Errorf("sample rate = %d, want 8000", cfg.Tone.SampleRate)
	}
	if cfg.Tone.Format != "pcm8" {
		t.Errorf("format = %q, want pcm8", cfg.Tone.Format)
	}
	if cfg.Tone.Seconds != 3 {
		t.Errorf("seconds = %v, want 3", cfg.Tone.Seconds)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())
	if err := fs.Parse([]string{"--tone-format=alaw", "--output-dir=/tmp/fixtures"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: fakeCmd{fs: fs}, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tone.Format != "alaw" {
		t.Errorf("format = %q, want alaw", cfg.Tone.Format)
	}
	if cfg.Output.Dir != "/tmp/fixtures" {
		t.Errorf("output dir = %q, want /tmp/fixtures", cfg.Output.Dir)
	}
	// Untouched values keep their defaults.
	if cfg.Tone.SampleRate != 8000 {
		t.Errorf("sample rate = %d, want 8000", cfg.Tone.SampleRate)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TONEGEN_TONE_SAMPLE_RATE", "16000")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tone.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want 16000 from env", cfg.Tone.SampleRate)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tonegen.yaml")
	contents := "tone:\n  seconds: 1.5\n  format: alaw\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tone.Seconds != 1.5 {
		t.Errorf("seconds = %v, want 1.5", cfg.Tone.Seconds)
	}
	if cfg.Tone.Format != "alaw" {
		t.Errorf("format = %q, want alaw", cfg.Tone.Format)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "absent.yaml"),
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
