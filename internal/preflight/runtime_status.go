package preflight

import (
	"context"
	"strings"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/notifications"
)

// CheckNotificationsFromConfig evaluates ntfy status from config and connectivity.
func CheckNotificationsFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Notifications"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	check := CheckNtfy(ctx, notifications.Endpoint(cfg.Notifications.NtfyTopic))
	if check.Passed {
		return Result{Name: name, Passed: true, Detail: check.Detail}
	}
	return Result{Name: name, Detail: check.Detail}
}

// CheckTranscriptionEngineFromConfig evaluates whether the configured Python
// interpreter can load the transcription engine.
func CheckTranscriptionEngineFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Transcription engine"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	status := deps.CheckFasterWhisper(ctx, cfg.Whisper.Interpreter)
	return Result{Name: name, Passed: status.Available, Detail: status.Detail}
}
