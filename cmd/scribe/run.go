package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/pipeline"
	"scribe/internal/preflight"
	"scribe/internal/services/whisper"
	"scribe/internal/transcript"
)

// runOptions collects the root-command flags for one invocation.
type runOptions struct {
	model       string
	format      string
	output      string
	keepAudio   bool
	audioOutput string
	language    string
}

// transcriptionRunner is the slice of pipeline.Runner the command needs.
type transcriptionRunner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// buildRunner constructs the real pipeline runner; tests substitute a fake to
// exercise flag translation without engines.
var buildRunner = func(cfg *config.Config, logger *slog.Logger, opts ...pipeline.Option) (transcriptionRunner, error) {
	return pipeline.NewRunner(cfg, logger, opts...)
}

func runTranscription(cmd *cobra.Command, ctx *commandContext, opts *runOptions, url string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	req, err := buildRequest(cfg, opts, url)
	if err != nil {
		return err
	}

	for _, check := range preflight.RunAll(cmd.Context(), cfg) {
		if !check.Passed {
			return fmt.Errorf("%s: %s", check.Name, check.Detail)
		}
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	renderer := newRunRenderer(cmd.OutOrStdout(), ctx.quiet())
	runner, err := buildRunner(cfg, logger,
		pipeline.WithStageObserver(renderer.stageChanged),
		pipeline.WithDownloadObserver(renderer.downloadProgress),
	)
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context(), req)
	renderer.finish()
	if err != nil {
		return err
	}
	renderer.summary(result)
	return nil
}

// buildRequest resolves flags against config defaults and validates the
// selector values before any stage runs.
func buildRequest(cfg *config.Config, opts *runOptions, url string) (pipeline.Request, error) {
	modelValue := strings.TrimSpace(opts.model)
	if modelValue == "" {
		modelValue = cfg.Whisper.Model
	}
	model, ok := whisper.ParseModel(modelValue)
	if !ok {
		return pipeline.Request{}, fmt.Errorf("unknown model %q (choose one of %s)", modelValue, whisper.ModelNames())
	}

	formatValue := strings.TrimSpace(opts.format)
	if formatValue == "" {
		formatValue = cfg.Output.Format
	}
	kind, ok := transcript.ParseKind(formatValue)
	if !ok {
		return pipeline.Request{}, fmt.Errorf("unknown format %q (choose one of %s)", formatValue, transcript.KindNames())
	}

	languageValue := strings.TrimSpace(opts.language)
	if languageValue == "" {
		languageValue = cfg.Whisper.Language
	}
	languageCode := ""
	if languageValue != "" {
		languageCode = language.ToISO2(languageValue)
		if languageCode == "" {
			return pipeline.Request{}, fmt.Errorf("unknown language %q (use an ISO 639-1 code such as en or de)", languageValue)
		}
	}

	return pipeline.Request{
		URL:         url,
		Model:       model,
		Kind:        kind,
		OutputPath:  strings.TrimSpace(opts.output),
		KeepAudio:   opts.keepAudio || cfg.Output.KeepAudio,
		AudioOutput: strings.TrimSpace(opts.audioOutput),
		Language:    languageCode,
	}, nil
}
