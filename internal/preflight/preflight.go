package preflight

import (
	"context"
	"strings"

	"scribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the preconditions for a transcription run: the staging and
// output directories must be usable and the speech engine must be importable.
// A broken fetch binary surfaces within milliseconds on its own; a missing
// faster-whisper installation would otherwise surface only after the
// download finished.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
	}
	if strings.TrimSpace(cfg.Paths.OutputDir) != "" {
		results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	}
	return append(results, CheckTranscriptionEngineFromConfig(ctx, cfg))
}
