package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"scribe/internal/config"
	"scribe/internal/pipeline"
	"scribe/internal/services"
	"scribe/internal/services/whisper"
	"scribe/internal/transcript"
)

type fakeRunner struct {
	req    pipeline.Request
	called bool
	result *pipeline.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, req pipeline.Request) (*pipeline.Result, error) {
	f.called = true
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &pipeline.Result{OutputPath: "out.txt"}, nil
}

// swapRunner replaces the pipeline constructor for the duration of one test.
func swapRunner(t *testing.T, fake *fakeRunner) {
	t.Helper()
	prev := buildRunner
	buildRunner = func(cfg *config.Config, logger *slog.Logger, opts ...pipeline.Option) (transcriptionRunner, error) {
		return fake, nil
	}
	t.Cleanup(func() { buildRunner = prev })
}

func TestRunCommandTranslatesFlags(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{result: &pipeline.Result{OutputPath: "talk.srt", Language: "de", Segments: 3}}
	swapRunner(t, fake)

	stdout, _, err := runCLI(t, configPath,
		"https://example.com/v/1",
		"--model", "small",
		"--format", "srt",
		"--language", "german",
		"--keep-audio",
		"--audio-output", "talk.mp3",
		"--output", "talk.srt",
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !fake.called {
		t.Fatal("expected the runner to be invoked")
	}
	if fake.req.URL != "https://example.com/v/1" {
		t.Errorf("url = %q", fake.req.URL)
	}
	if fake.req.Model != whisper.ModelSmall {
		t.Errorf("model = %q, want small", fake.req.Model)
	}
	if fake.req.Kind != transcript.KindSRT {
		t.Errorf("kind = %q, want srt", fake.req.Kind)
	}
	if fake.req.Language != "de" {
		t.Errorf("language = %q, want de", fake.req.Language)
	}
	if !fake.req.KeepAudio {
		t.Error("expected KeepAudio to be set")
	}
	if fake.req.AudioOutput != "talk.mp3" {
		t.Errorf("audio output = %q", fake.req.AudioOutput)
	}
	if fake.req.OutputPath != "talk.srt" {
		t.Errorf("output path = %q", fake.req.OutputPath)
	}
	requireContains(t, stdout, "Transcript written to talk.srt")
	requireContains(t, stdout, "Language: German")
}

func TestRunCommandDefaultsFromConfig(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{}
	swapRunner(t, fake)

	if _, _, err := runCLI(t, configPath, "https://example.com/v/2"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if fake.req.Model != whisper.ModelBase {
		t.Errorf("model = %q, want config default base", fake.req.Model)
	}
	if fake.req.Kind != transcript.KindText {
		t.Errorf("kind = %q, want config default txt", fake.req.Kind)
	}
	if fake.req.Language != "" {
		t.Errorf("language = %q, want auto-detect", fake.req.Language)
	}
	if fake.req.KeepAudio {
		t.Error("keep audio should default to false")
	}
}

func TestRunCommandRejectsUnknownModel(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{}
	swapRunner(t, fake)

	_, _, err := runCLI(t, configPath, "https://example.com/v/1", "--model", "gigantic")
	if err == nil {
		t.Fatal("expected model error")
	}
	requireContains(t, err.Error(), "unknown model")
	if fake.called {
		t.Fatal("runner must not start on invalid selectors")
	}
}

func TestRunCommandRejectsUnknownFormat(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{}
	swapRunner(t, fake)

	_, _, err := runCLI(t, configPath, "https://example.com/v/1", "--format", "pdf")
	if err == nil {
		t.Fatal("expected format error")
	}
	requireContains(t, err.Error(), "unknown format")
	if fake.called {
		t.Fatal("runner must not start on invalid selectors")
	}
}

func TestRunCommandRejectsUnknownLanguage(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{}
	swapRunner(t, fake)

	_, _, err := runCLI(t, configPath, "https://example.com/v/1", "--language", "klingon")
	if err == nil {
		t.Fatal("expected language error")
	}
	requireContains(t, err.Error(), "unknown language")
}

func TestRunCommandQuietPrintsPathOnly(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{}
	swapRunner(t, fake)

	stdout, _, err := runCLI(t, configPath, "--quiet", "https://example.com/v/1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "Transcript written to out.txt" {
		t.Fatalf("quiet output = %q", got)
	}
}

func TestRunCommandPropagatesRunError(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{err: services.Wrap(services.ErrDownload, "fetch", "download audio", "", errors.New("boom"))}
	swapRunner(t, fake)

	_, _, err := runCLI(t, configPath, "https://example.com/v/1")
	if !errors.Is(err, services.ErrDownload) {
		t.Fatalf("expected download error, got %v", err)
	}
}

func TestRunCommandFailsPreflightWithoutEngine(t *testing.T) {
	configPath := writeConfigFile(t, testConfig{interpreter: "definitely-missing-python"})
	fake := &fakeRunner{}
	swapRunner(t, fake)

	_, _, err := runCLI(t, configPath, "https://example.com/v/1")
	if err == nil {
		t.Fatal("expected preflight error")
	}
	requireContains(t, err.Error(), "Transcription engine")
	if fake.called {
		t.Fatal("runner must not start when preflight fails")
	}
}

func TestRunCommandRejectsBadLogLevel(t *testing.T) {
	configPath := writeTestConfig(t)
	fake := &fakeRunner{}
	swapRunner(t, fake)

	_, _, err := runCLI(t, configPath, "--log-level", "loud", "https://example.com/v/1")
	if err == nil {
		t.Fatal("expected log level error")
	}
	requireContains(t, err.Error(), "log level")
}

func TestRootRequiresURL(t *testing.T) {
	if _, _, err := runCLI(t, ""); err == nil {
		t.Fatal("expected argument error for bare invocation")
	}
}

func TestRootVersionFlag(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, stdout, "scribe version "+version)
}
