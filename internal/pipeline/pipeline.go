package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/config"
	"scribe/internal/fileutil"
	"scribe/internal/logging"
	"scribe/internal/notifications"
	"scribe/internal/services"
	"scribe/internal/services/whisper"
	"scribe/internal/services/ytdlp"
	"scribe/internal/textutil"
	"scribe/internal/transcript"
)

// Fetcher downloads the audio track for a video URL into destDir.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string, progress func(ytdlp.ProgressUpdate)) (ytdlp.Download, error)
}

// Transcriber converts a fetched audio file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, req whisper.Request) (transcript.Transcript, error)
}

var (
	_ Fetcher     = (*ytdlp.CLI)(nil)
	_ Transcriber = (*whisper.Service)(nil)
)

// Request collects the resolved inputs for one transcription run. It is
// built once from CLI flags and config defaults and never mutated.
type Request struct {
	URL string
	// Model selects the engine weights; empty falls back to the default.
	Model whisper.Model
	// Kind selects the output format; empty falls back to plain text.
	Kind transcript.Kind
	// OutputPath overrides the derived transcript destination when set.
	OutputPath string
	// KeepAudio preserves the fetched audio next to the transcript after a
	// successful run.
	KeepAudio bool
	// AudioOutput moves the fetched audio to an explicit path right after
	// the fetch stage; that file survives even when a later stage fails.
	AudioOutput string
	// Language pins the spoken language (ISO 639-1). Empty enables engine
	// auto-detection.
	Language string
}

// AudioArtifact describes the audio file a run fetched.
type AudioArtifact struct {
	Path     string
	Title    string
	Duration float64
	Size     int64
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	OutputPath string
	// Audio reports the fetched artifact. Path is empty when the audio was
	// removed with the staging directory.
	Audio    AudioArtifact
	Language string
	Segments int
	Elapsed  time.Duration
}

// Runner executes the fetch, transcribe, format sequence for one URL at a
// time. Every run owns a fresh staging directory under the configured work
// directory and removes it before returning.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	fetcher     Fetcher
	transcriber Transcriber
	notifier    notifications.Service
	onStage     func(Status)
	onDownload  func(ytdlp.ProgressUpdate)
}

// Option adjusts Runner construction.
type Option func(*Runner)

// WithFetcher replaces the default yt-dlp engine client.
func WithFetcher(f Fetcher) Option {
	return func(r *Runner) { r.fetcher = f }
}

// WithTranscriber replaces the default faster-whisper engine client.
func WithTranscriber(t Transcriber) Option {
	return func(r *Runner) { r.transcriber = t }
}

// WithNotifier replaces the notification service derived from config.
func WithNotifier(n notifications.Service) Option {
	return func(r *Runner) { r.notifier = n }
}

// WithStageObserver registers a callback invoked at every status transition.
// The callback runs inline between stages and must return quickly.
func WithStageObserver(fn func(Status)) Option {
	return func(r *Runner) { r.onStage = fn }
}

// WithDownloadObserver registers a callback receiving download progress.
func WithDownloadObserver(fn func(ytdlp.ProgressUpdate)) Option {
	return func(r *Runner) { r.onDownload = fn }
}

// NewRunner wires a Runner from config. Engine clients default to the real
// yt-dlp and faster-whisper implementations.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		cli, err := ytdlp.NewCLI(
			ytdlp.WithBinary(cfg.Ytdlp.Binary),
			ytdlp.WithFFprobeBinary(cfg.FFprobeBinary()),
			ytdlp.WithAudioFormat(cfg.Ytdlp.AudioFormat),
			ytdlp.WithAudioQuality(cfg.Ytdlp.AudioQuality),
			ytdlp.WithExtraArgs(cfg.Ytdlp.ExtraArgs),
		)
		if err != nil {
			return nil, err
		}
		r.fetcher = cli
	}
	if r.transcriber == nil {
		svc, err := whisper.NewService(whisper.Config{
			Interpreter: cfg.Whisper.Interpreter,
			Device:      cfg.Whisper.Device,
			ComputeType: cfg.Whisper.ComputeType,
			BeamSize:    cfg.Whisper.BeamSize,
		})
		if err != nil {
			return nil, err
		}
		r.transcriber = svc
	}
	if r.notifier == nil {
		r.notifier = notifications.NewService(cfg)
	}
	return r, nil
}

// Run executes the full pipeline for one request. The staging directory is
// removed on every return path; only audio explicitly routed elsewhere via
// KeepAudio or AudioOutput survives.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, services.Wrap(services.ErrValidation, "setup", "request", "url is required", nil)
	}
	if req.Model == "" {
		req.Model = whisper.DefaultModel
	}
	if req.Kind == "" {
		req.Kind = transcript.KindText
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	runStart := time.Now()
	r.setStage(StatusPending)
	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("url", req.URL),
		logging.String("model", string(req.Model)),
		logging.String("format", string(req.Kind)),
	)

	staging := filepath.Join(r.cfg.Paths.WorkDir, "run-"+runID)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		wrapped := services.Wrap(services.ErrIO, "setup", "create staging directory", staging, err)
		return nil, r.fail(ctx, logger, req.URL, runStart, wrapped)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Warn("staging directory not removed",
				logging.String("path", staging),
				logging.Error(err))
		}
	}()

	title := req.URL
	keptAudio := ""

	fetchStart := r.stageStarted(logger, StatusFetching)
	fetchCtx, cancelFetch := stageContext(services.WithStage(ctx, "fetch"), r.cfg.Ytdlp.Timeout)
	download, err := r.fetcher.Fetch(fetchCtx, req.URL, staging, r.onDownload)
	cancelFetch()
	if err != nil {
		return nil, r.fail(ctx, logger, title, runStart, services.Wrap(services.ErrDownload, "fetch", "download audio", "", err))
	}
	artifact := AudioArtifact{
		Path:     download.Path,
		Title:    download.Title,
		Duration: download.Duration,
		Size:     download.Size,
	}
	title = artifact.Title
	r.stageCompleted(logger, StatusFetching, fetchStart,
		logging.String("title", artifact.Title),
		logging.Int64("audio_bytes", artifact.Size),
	)

	if dest := strings.TrimSpace(req.AudioOutput); dest != "" {
		if err := moveAudio(artifact.Path, dest); err != nil {
			return nil, r.fail(ctx, logger, title, runStart, services.Wrap(services.ErrIO, "fetch", "move audio", dest, err))
		}
		artifact.Path = dest
		keptAudio = dest
	}

	transcribeStart := r.stageStarted(logger, StatusTranscribing)
	transcribeCtx, cancelTranscribe := stageContext(services.WithStage(ctx, "transcribe"), r.cfg.Whisper.Timeout)
	result, err := r.transcriber.Transcribe(transcribeCtx, whisper.Request{
		AudioPath: artifact.Path,
		Model:     req.Model,
		Language:  req.Language,
		WorkDir:   staging,
	})
	cancelTranscribe()
	if err != nil {
		return nil, r.fail(ctx, logger, title, runStart, services.Wrap(services.ErrTranscription, "transcribe", "speech to text", "", err))
	}
	r.stageCompleted(logger, StatusTranscribing, transcribeStart,
		logging.Int("segments", len(result.Segments)),
		logging.String("language", result.Language),
	)

	formatStart := r.stageStarted(logger, StatusFormatting)
	rendered, err := transcript.Render(result.Segments, req.Kind)
	if err != nil {
		return nil, r.fail(ctx, logger, title, runStart, err)
	}
	outputPath := r.resolveOutputPath(req, artifact.Title)
	if err := writeTranscript(outputPath, rendered); err != nil {
		return nil, r.fail(ctx, logger, title, runStart, services.Wrap(services.ErrIO, "format", "write transcript", outputPath, err))
	}
	if req.KeepAudio && keptAudio == "" {
		dest := audioDestination(outputPath, artifact.Path)
		if err := moveAudio(artifact.Path, dest); err != nil {
			return nil, r.fail(ctx, logger, title, runStart, services.Wrap(services.ErrIO, "format", "keep audio", dest, err))
		}
		artifact.Path = dest
		keptAudio = dest
	}
	r.stageCompleted(logger, StatusFormatting, formatStart,
		logging.String("output", outputPath),
	)

	elapsed := time.Since(runStart)
	r.setStage(StatusCompleted)
	logger.Info("run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("output", outputPath),
		logging.Int("segments", len(result.Segments)),
		logging.Duration("run_duration", elapsed),
	)
	if err := r.notifier.NotifyRunCompleted(ctx, title, outputPath, elapsed); err != nil {
		logger.Warn("completion notification failed", logging.Error(err))
	}

	artifact.Path = keptAudio
	return &Result{
		RunID:      runID,
		OutputPath: outputPath,
		Audio:      artifact,
		Language:   result.Language,
		Segments:   len(result.Segments),
		Elapsed:    elapsed,
	}, nil
}

func (r *Runner) fail(ctx context.Context, logger *slog.Logger, title string, start time.Time, err error) error {
	r.setStage(StatusFailed)
	if errors.Is(err, context.Canceled) {
		logger.Info("run interrupted", logging.Duration("run_duration", time.Since(start)))
		return err
	}
	logger.Error("run failed",
		logging.String(logging.FieldEventType, "run_failed"),
		logging.String("failed_stage", services.StageOf(err)),
		logging.String("category", services.Category(err)),
		logging.Duration("run_duration", time.Since(start)),
		logging.Error(err),
	)
	if notifyErr := r.notifier.NotifyRunFailed(ctx, title, err); notifyErr != nil {
		logger.Warn("failure notification failed", logging.Error(notifyErr))
	}
	return err
}

func (r *Runner) setStage(status Status) {
	if r.onStage != nil {
		r.onStage(status)
	}
}

func (r *Runner) stageStarted(logger *slog.Logger, status Status) time.Time {
	r.setStage(status)
	logger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String(logging.FieldStage, stageNameFor(status)),
	)
	return time.Now()
}

func (r *Runner) stageCompleted(logger *slog.Logger, status Status, start time.Time, attrs ...logging.Attr) {
	fields := []logging.Attr{
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String(logging.FieldStage, stageNameFor(status)),
		logging.Duration("stage_duration", time.Since(start)),
	}
	fields = append(fields, attrs...)
	logger.Info("stage completed", logging.Args(fields...)...)
}

// resolveOutputPath derives the transcript destination. Explicit paths win;
// otherwise the sanitized video title plus the format extension lands in the
// configured output directory (empty means the current directory).
func (r *Runner) resolveOutputPath(req Request, title string) string {
	if path := strings.TrimSpace(req.OutputPath); path != "" {
		return path
	}
	name := textutil.SanitizeFileName(title)
	if name == "" {
		name = "transcript"
	}
	return filepath.Join(r.cfg.Paths.OutputDir, name+req.Kind.Extension())
}

// stageContext applies the configured per-stage timeout in seconds. A zero
// or negative timeout leaves the parent deadline in place.
func stageContext(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

func stageNameFor(status Status) string {
	switch status {
	case StatusFetching:
		return "fetch"
	case StatusTranscribing:
		return "transcribe"
	case StatusFormatting:
		return "format"
	default:
		return string(status)
	}
}

func writeTranscript(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return fileutil.WriteFileAtomic(path, []byte(content), 0o644)
}

func moveAudio(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return fileutil.MoveFile(src, dst)
}

// audioDestination places kept audio next to the transcript, reusing the
// artifact's own extension.
func audioDestination(outputPath, audioPath string) string {
	stem := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	ext := filepath.Ext(audioPath)
	if ext == "" {
		ext = ".mp3"
	}
	return stem + ext
}
