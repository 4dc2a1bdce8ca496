package whisper

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"scribe/internal/transcript"
)

//go:embed transcribe.py
var helperScript []byte

const helperName = "transcribe.py"

// commandContext is swapped in tests to observe the spawned process.
var commandContext = exec.CommandContext

// Config captures runtime settings for the transcription engine.
type Config struct {
	// Interpreter is the Python command used to run the helper, expressed as
	// a single shell-words string (for example "python3" or "uv run python").
	Interpreter string
	// Device selects the inference device; "auto" lets the engine decide.
	Device string
	// ComputeType selects the quantization mode; "auto" lets the engine decide.
	ComputeType string
	// BeamSize controls decode search width. Values below one fall back to the
	// engine default of five.
	BeamSize int
}

// Service runs the speech-to-text engine through a bundled Python helper.
type Service struct {
	interpreter []string
	device      string
	computeType string
	beamSize    int
}

// NewService validates the interpreter command and returns a ready client.
func NewService(cfg Config) (*Service, error) {
	command := strings.TrimSpace(cfg.Interpreter)
	if command == "" {
		command = "python3"
	}
	parts, err := shellwords.NewParser().Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse interpreter command %q: %w", command, err)
	}
	if len(parts) == 0 {
		return nil, errors.New("interpreter command is empty")
	}

	svc := &Service{
		interpreter: parts,
		device:      strings.TrimSpace(cfg.Device),
		computeType: strings.TrimSpace(cfg.ComputeType),
		beamSize:    cfg.BeamSize,
	}
	if svc.device == "" {
		svc.device = "auto"
	}
	if svc.computeType == "" {
		svc.computeType = "auto"
	}
	if svc.beamSize < 1 {
		svc.beamSize = 5
	}
	return svc, nil
}

// Request describes one transcription run.
type Request struct {
	// AudioPath is the audio file to transcribe.
	AudioPath string
	// Model selects the engine weights; empty falls back to DefaultModel.
	Model Model
	// Language pins the spoken language (ISO 639-1). Empty enables
	// auto-detection.
	Language string
	// WorkDir receives the materialized helper script. It must exist and be
	// writable for the duration of the run.
	WorkDir string
}

type helperOutput struct {
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs the engine over the full audio file and returns the
// recognized transcript. The engine downloads and caches model weights on
// first use of each model, so initial runs can take noticeably longer.
func (s *Service) Transcribe(ctx context.Context, req Request) (transcript.Transcript, error) {
	if strings.TrimSpace(req.AudioPath) == "" {
		return transcript.Transcript{}, errors.New("audio path is required")
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		return transcript.Transcript{}, fmt.Errorf("audio file: %w", err)
	}
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	scriptPath, err := s.materializeHelper(req.WorkDir)
	if err != nil {
		return transcript.Transcript{}, err
	}

	args := append([]string{}, s.interpreter[1:]...)
	args = append(args, scriptPath)
	args = append(args, s.buildArgs(req.AudioPath, model, req.Language)...)

	cmd := commandContext(ctx, s.interpreter[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := lastLine(stderr.String()); detail != "" {
			return transcript.Transcript{}, fmt.Errorf("engine failed: %s: %w", detail, err)
		}
		return transcript.Transcript{}, fmt.Errorf("engine failed: %w", err)
	}

	var parsed helperOutput
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &parsed); err != nil {
		return transcript.Transcript{}, fmt.Errorf("parse engine output: %w", err)
	}

	result := transcript.Transcript{
		Language: strings.TrimSpace(parsed.Language),
		Duration: parsed.Duration,
		Segments: make([]transcript.Segment, 0, len(parsed.Segments)),
	}
	for _, segment := range parsed.Segments {
		result.Segments = append(result.Segments, transcript.Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  strings.TrimSpace(segment.Text),
		})
	}
	return result, nil
}

func (s *Service) buildArgs(audioPath string, model Model, language string) []string {
	args := []string{
		"--audio", audioPath,
		"--model", string(model),
		"--device", s.device,
		"--compute-type", s.computeType,
		"--beam-size", strconv.Itoa(s.beamSize),
	}
	if lang := strings.TrimSpace(language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

// materializeHelper writes the bundled helper script into the work directory
// so the interpreter can run it from a real path.
func (s *Service) materializeHelper(workDir string) (string, error) {
	if strings.TrimSpace(workDir) == "" {
		return "", errors.New("work directory is required")
	}
	scriptPath := filepath.Join(workDir, helperName)
	if err := os.WriteFile(scriptPath, helperScript, 0o644); err != nil {
		return "", fmt.Errorf("write helper script: %w", err)
	}
	return scriptPath, nil
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
