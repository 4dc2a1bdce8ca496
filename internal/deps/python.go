package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"
)

// CheckFasterWhisper reports whether the configured Python interpreter can
// import the faster-whisper package the transcription helper needs.
//
// The interpreter command uses shell quoting rules so wrappers like
// "uv run python" resolve the same way they do at transcription time.
func CheckFasterWhisper(ctx context.Context, interpreterCommand string) Status {
	result := Status{
		Name:        "faster-whisper",
		Description: "Python package backing the speech-to-text engine",
	}

	parts, err := shellwords.NewParser().Parse(strings.TrimSpace(interpreterCommand))
	if err != nil || len(parts) == 0 {
		result.Command = strings.TrimSpace(interpreterCommand)
		result.Detail = "interpreter command not usable"
		return result
	}
	result.Command = parts[0]

	if _, err := exec.LookPath(parts[0]); err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", parts[0])
		return result
	}

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	args := append(parts[1:], "-c", "import faster_whisper; print(faster_whisper.__version__)")
	output, err := exec.CommandContext(checkCtx, parts[0], args...).Output()
	if err != nil {
		result.Detail = "faster-whisper not importable (pip install faster-whisper)"
		return result
	}

	result.Available = true
	if version := strings.TrimSpace(string(output)); version != "" {
		result.Detail = "version " + version
	}
	return result
}
