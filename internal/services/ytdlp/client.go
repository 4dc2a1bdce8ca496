package ytdlp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scribe/internal/media/ffprobe"
)

var commandContext = exec.CommandContext

// progressTemplate makes yt-dlp print each progress update as a JSON object.
const progressTemplate = "%(progress)j"

// outputTemplate pins the download to a predictable name inside the staging
// directory; yt-dlp substitutes the container extension.
const outputTemplate = "audio.%(ext)s"

// ProgressUpdate captures yt-dlp download progress events.
type ProgressUpdate struct {
	Status          string
	Percent         float64
	DownloadedBytes int64
	TotalBytes      int64
	Speed           float64
}

// Download describes a fetched and verified audio file.
type Download struct {
	Path     string
	Title    string
	ID       string
	Duration float64
	Size     int64
}

// Client defines download behaviour for the fetch stage.
type Client interface {
	Fetch(ctx context.Context, url, destDir string, progress func(ProgressUpdate)) (Download, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithFFprobeBinary overrides the probe binary used for verification.
func WithFFprobeBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ffprobeBinary = binary
		}
	}
}

// WithAudioFormat overrides the extraction container (default mp3).
func WithAudioFormat(format string) Option {
	return func(c *CLI) {
		if format != "" {
			c.audioFormat = format
		}
	}
}

// WithAudioQuality overrides the extraction bitrate (default 192K).
func WithAudioQuality(quality string) Option {
	return func(c *CLI) {
		if quality != "" {
			c.audioQuality = quality
		}
	}
}

// WithExtraArgs appends raw yt-dlp arguments, split with shell quoting rules.
func WithExtraArgs(raw string) Option {
	return func(c *CLI) {
		c.rawExtraArgs = raw
	}
}

// CLI wraps the yt-dlp command-line downloader.
type CLI struct {
	binary        string
	ffprobeBinary string
	audioFormat   string
	audioQuality  string
	rawExtraArgs  string
	extraArgs     []string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) (*CLI, error) {
	cli := &CLI{
		binary:        "yt-dlp",
		ffprobeBinary: "ffprobe",
		audioFormat:   "mp3",
		audioQuality:  "192K",
	}
	for _, opt := range opts {
		opt(cli)
	}
	if raw := strings.TrimSpace(cli.rawExtraArgs); raw != "" {
		parsed, err := shellwords.NewParser().Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse extra arguments %q: %w", raw, err)
		}
		cli.extraArgs = parsed
	}
	return cli, nil
}

// Fetch downloads the best available audio for url into destDir, verifies the
// result with ffprobe, and returns the artifact details.
func (c *CLI) Fetch(ctx context.Context, url, destDir string, progress func(ProgressUpdate)) (Download, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Download{}, errors.New("url required")
	}
	destDir = strings.TrimSpace(destDir)
	if destDir == "" {
		return Download{}, errors.New("destination directory required")
	}

	cmd := commandContext(ctx, c.binary, c.buildArgs(url, destDir)...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Download{}, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return Download{}, fmt.Errorf("start yt-dlp: %w", err)
	}

	var (
		videoID    string
		videoTitle string
		noise      string
	)
	scanner := bufio.NewScanner(stdout)
	// Info dicts routinely exceed bufio's default token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		var probe struct {
			Status string `json:"status"`
			ID     string `json:"id"`
			Title  string `json:"title"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			if trimmed := strings.TrimSpace(string(line)); trimmed != "" {
				noise = trimmed
			}
			continue
		}
		if probe.Status != "" {
			if progress != nil {
				progress(parseProgress(line, probe.Status))
			}
			continue
		}
		if probe.ID != "" || probe.Title != "" {
			videoID = probe.ID
			videoTitle = strings.TrimSpace(probe.Title)
		}
	}
	if err := scanner.Err(); err != nil {
		return Download{}, fmt.Errorf("read yt-dlp output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if noise != "" {
			return Download{}, fmt.Errorf("yt-dlp failed: %s: %w", noise, err)
		}
		return Download{}, fmt.Errorf("yt-dlp failed: %w", err)
	}

	outputPath := filepath.Join(destDir, "audio."+c.audioFormat)
	duration, size, err := c.verifyAudio(ctx, outputPath)
	if err != nil {
		return Download{}, err
	}

	if videoTitle == "" {
		videoTitle = titleFromID(videoID)
	}
	return Download{
		Path:     outputPath,
		Title:    videoTitle,
		ID:       videoID,
		Duration: duration,
		Size:     size,
	}, nil
}

func (c *CLI) buildArgs(url, destDir string) []string {
	args := []string{
		"--newline",
		"--no-playlist",
		"--print-json",
		"--progress-template", progressTemplate,
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", c.audioFormat,
		"--audio-quality", c.audioQuality,
		"-o", filepath.Join(destDir, outputTemplate),
	}
	args = append(args, c.extraArgs...)
	return append(args, "--", url)
}

// verifyAudio confirms the downloaded file exists and contains a decodable
// audio stream before the pipeline spends minutes transcribing it.
func (c *CLI) verifyAudio(ctx context.Context, path string) (float64, int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, 0, fmt.Errorf("downloaded audio missing: %w", err)
	}
	if stat.Size() == 0 {
		return 0, 0, fmt.Errorf("downloaded audio file %s is empty", filepath.Base(path))
	}

	result, err := ffprobe.Inspect(ctx, c.ffprobeBinary, path)
	if err != nil {
		return 0, 0, err
	}
	if result.AudioStreamCount() == 0 {
		return 0, 0, fmt.Errorf("downloaded file %s contains no audio streams", filepath.Base(path))
	}
	duration := result.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return 0, 0, fmt.Errorf("downloaded file %s reports no audio duration", filepath.Base(path))
	}

	size := result.SizeBytes()
	if size == 0 {
		size = stat.Size()
	}
	return duration, size, nil
}

func parseProgress(line []byte, status string) ProgressUpdate {
	var payload struct {
		DownloadedBytes    float64 `json:"downloaded_bytes"`
		TotalBytes         float64 `json:"total_bytes"`
		TotalBytesEstimate float64 `json:"total_bytes_estimate"`
		Speed              float64 `json:"speed"`
	}
	// JSON nulls leave the numeric fields at zero.
	_ = json.Unmarshal(line, &payload)

	total := payload.TotalBytes
	if total <= 0 {
		total = payload.TotalBytesEstimate
	}
	return ProgressUpdate{
		Status:          status,
		Percent:         percentFor(status, payload.DownloadedBytes, total),
		DownloadedBytes: int64(payload.DownloadedBytes),
		TotalBytes:      int64(total),
		Speed:           payload.Speed,
	}
}

func percentFor(status string, downloaded, total float64) float64 {
	if status == "finished" {
		return 100
	}
	if total <= 0 {
		return 0
	}
	percent := downloaded / total * 100
	switch {
	case percent > 100:
		return 100
	case percent < 0:
		return 0
	}
	return percent
}

// titleFromID derives a presentable title when the source metadata omits one.
func titleFromID(id string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(id)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return ""
	}
	return cases.Title(language.Und).String(cleaned)
}

var _ Client = (*CLI)(nil)
