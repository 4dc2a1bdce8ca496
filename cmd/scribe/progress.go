package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"scribe/internal/language"
	"scribe/internal/pipeline"
	"scribe/internal/services/ytdlp"
)

// runRenderer prints stage transitions and download progress for interactive
// runs. All of its output goes to stdout; the structured logger owns stderr.
type runRenderer struct {
	out   io.Writer
	quiet bool
	tty   bool
	bar   *progressbar.ProgressBar
}

func newRunRenderer(out io.Writer, quiet bool) *runRenderer {
	return &runRenderer{
		out:   out,
		quiet: quiet,
		tty:   shouldColorize(out),
	}
}

// stageChanged prints one line per pipeline stage. Terminal states stay
// silent: completion is covered by the summary and failure by the error.
func (r *runRenderer) stageChanged(status pipeline.Status) {
	if r.quiet {
		return
	}
	r.closeBar()
	switch status {
	case pipeline.StatusPending, pipeline.StatusCompleted, pipeline.StatusFailed:
		return
	}
	fmt.Fprintf(r.out, "%s...\n", status.StageLabel())
}

// downloadProgress feeds yt-dlp progress events into a terminal progress bar.
func (r *runRenderer) downloadProgress(update ytdlp.ProgressUpdate) {
	if r.quiet || !r.tty {
		return
	}
	if r.bar == nil {
		r.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionClearOnFinish(),
		)
	}
	if update.Status == "finished" {
		_ = r.bar.Set(100)
		r.closeBar()
		return
	}
	_ = r.bar.Set(int(update.Percent))
}

// finish releases the progress bar when the run ends on any path.
func (r *runRenderer) finish() {
	r.closeBar()
}

func (r *runRenderer) closeBar() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	r.bar = nil
}

// summary prints the post-run report. Quiet mode keeps just the result paths
// so the output stays scriptable.
func (r *runRenderer) summary(res *pipeline.Result) {
	if res == nil {
		return
	}
	fmt.Fprintf(r.out, "Transcript written to %s\n", res.OutputPath)
	if res.Audio.Path != "" {
		fmt.Fprintf(r.out, "Audio kept at %s\n", res.Audio.Path)
	}
	if r.quiet {
		return
	}
	if title := strings.TrimSpace(res.Audio.Title); title != "" {
		fmt.Fprintf(r.out, "  Title:    %s\n", title)
	}
	fmt.Fprintf(r.out, "  Language: %s\n", language.DisplayName(res.Language))
	fmt.Fprintf(r.out, "  Segments: %d\n", res.Segments)
	if res.Audio.Duration > 0 {
		fmt.Fprintf(r.out, "  Audio:    %s (%s)\n", formatSeconds(res.Audio.Duration), humanize.Bytes(uint64(res.Audio.Size)))
	}
	fmt.Fprintf(r.out, "  Elapsed:  %s\n", res.Elapsed.Round(time.Second))
}

// formatSeconds renders an audio duration as h:mm:ss, or m:ss under an hour.
func formatSeconds(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
