package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"scribe/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("SCRIBE_CONFIG", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWork := filepath.Join(tempHome, ".cache", "scribe")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, wantWork)
	}
	if cfg.Paths.OutputDir != "" {
		t.Fatalf("expected empty output dir (current directory), got %q", cfg.Paths.OutputDir)
	}
	if cfg.Output.Format != "txt" {
		t.Fatalf("unexpected default format: %q", cfg.Output.Format)
	}
	if cfg.Output.KeepAudio {
		t.Fatal("expected keep_audio disabled by default")
	}
	if cfg.Ytdlp.Binary != "yt-dlp" || cfg.Ytdlp.AudioFormat != "mp3" || cfg.Ytdlp.AudioQuality != "192K" {
		t.Fatalf("unexpected ytdlp defaults: %+v", cfg.Ytdlp)
	}
	if cfg.Whisper.Model != "base" || cfg.Whisper.Interpreter != "python3" {
		t.Fatalf("unexpected whisper defaults: %+v", cfg.Whisper)
	}
	if cfg.Whisper.Device != "auto" || cfg.Whisper.ComputeType != "auto" || cfg.Whisper.BeamSize != 5 {
		t.Fatalf("unexpected whisper engine defaults: %+v", cfg.Whisper)
	}
	if cfg.Whisper.Language != "" {
		t.Fatalf("expected language auto-detection by default, got %q", cfg.Whisper.Language)
	}
	if cfg.Notifications.NtfyTopic != "" {
		t.Fatal("expected notifications disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.WorkDir)
	if err != nil {
		t.Fatalf("expected work dir %q to exist: %v", cfg.Paths.WorkDir, err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Paths.WorkDir)
	}
}

func TestLoadHonoursXDGCacheHome(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	t.Setenv("SCRIBE_CONFIG", "")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.WorkDir != filepath.Join(cacheDir, "scribe") {
		t.Fatalf("unexpected work dir: %q", cfg.Paths.WorkDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scribe.toml")

	type payload struct {
		Output struct {
			Format    string `toml:"format"`
			KeepAudio bool   `toml:"keep_audio"`
		} `toml:"output"`
		Ytdlp struct {
			Timeout int `toml:"timeout"`
		} `toml:"ytdlp"`
		Whisper struct {
			Model    string `toml:"model"`
			Language string `toml:"language"`
		} `toml:"whisper"`
	}
	custom := payload{}
	custom.Output.Format = "SRT"
	custom.Output.KeepAudio = true
	custom.Ytdlp.Timeout = 120
	custom.Whisper.Model = "small"
	custom.Whisper.Language = "german"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Output.Format != "srt" {
		t.Fatalf("expected format normalized to srt, got %q", cfg.Output.Format)
	}
	if !cfg.Output.KeepAudio {
		t.Fatal("expected keep_audio override")
	}
	if cfg.Ytdlp.Timeout != 120 {
		t.Fatalf("expected timeout 120, got %d", cfg.Ytdlp.Timeout)
	}
	if cfg.Whisper.Model != "small" {
		t.Fatalf("expected model small, got %q", cfg.Whisper.Model)
	}
	if cfg.Whisper.Language != "de" {
		t.Fatalf("expected language word form normalized to de, got %q", cfg.Whisper.Language)
	}
}

func TestLoadUsesScribeConfigEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(configPath, []byte("[output]\nformat = \"vtt\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SCRIBE_CONFIG", configPath)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected env-provided path %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Output.Format != "vtt" {
		t.Fatalf("expected format vtt, got %q", cfg.Output.Format)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scribe.toml")
	if err := os.WriteFile(configPath, []byte("output = {"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected parse error for malformed config")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, section := range []string{"[paths]", "[output]", "[ytdlp]", "[whisper]", "[notifications]", "[logging]"} {
		if !strings.Contains(string(contents), section) {
			t.Fatalf("sample config missing %s section", section)
		}
	}

	// Every setting ships commented out, so loading the sample must be
	// equivalent to loading no file at all.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = "pdf"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown output format")
	}

	cfg = config.Default()
	cfg.Whisper.Model = "gigantic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown model")
	}

	cfg = config.Default()
	cfg.Whisper.Device = "tpu"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported device")
	}

	cfg = config.Default()
	cfg.Whisper.Language = "klingon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unrecognized language")
	}

	cfg = config.Default()
	cfg.Whisper.Interpreter = `python3 "unterminated`
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unparsable interpreter")
	}

	cfg = config.Default()
	cfg.Ytdlp.AudioFormat = "best"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unpredictable audio format")
	}

	cfg = config.Default()
	cfg.Ytdlp.ExtraArgs = `--user-agent "unterminated`
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unparsable extra args")
	}

	cfg = config.Default()
	cfg.Ytdlp.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}
}
