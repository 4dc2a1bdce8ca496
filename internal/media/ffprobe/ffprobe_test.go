package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}

func TestInspectParsesProbeOutput(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "stub-ffprobe")
	script := `#!/bin/sh
echo '{"streams":[{"index":0,"codec_name":"mp3","codec_type":"audio","sample_rate":"44100","channels":2}],"format":{"filename":"audio.mp3","nb_streams":1,"duration":"7.2","size":"172800","format_name":"mp3"}}'
`
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub ffprobe: %v", err)
	}

	result, err := Inspect(context.Background(), stub, "audio.mp3")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.AudioStreamCount() != 1 {
		t.Errorf("audio streams = %d, want 1", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 7.2 {
		t.Errorf("duration = %v, want 7.2", result.DurationSeconds())
	}
	if result.Streams[0].CodecName != "mp3" || result.Streams[0].Channels != 2 {
		t.Errorf("unexpected stream details: %+v", result.Streams[0])
	}
}

func TestInspectReportsProbeFailure(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "stub-ffprobe")
	script := `#!/bin/sh
echo 'audio.mp3: Invalid data found when processing input' >&2
exit 1
`
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub ffprobe: %v", err)
	}

	_, err := Inspect(context.Background(), stub, "audio.mp3")
	if err == nil {
		t.Fatal("expected error from failing probe")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error %q should include probe output", err)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
