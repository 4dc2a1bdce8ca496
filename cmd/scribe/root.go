package main

import (
	"github.com/spf13/cobra"
)

// version is stamped by the release build; the default marks dev builds.
var version = "0.1.0"

func newRootCommand() *cobra.Command {
	var (
		configFlag    string
		logLevelFlag  string
		logFormatFlag string
		quietFlag     bool
	)

	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag, &quietFlag)
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "scribe <url>",
		Short: "Transcribe a video URL to text",
		Long: `Scribe downloads the audio track of a video URL, runs it through a local
speech-to-text engine, and writes the transcript as plain text or subtitles.

  scribe https://www.youtube.com/watch?v=dQw4w9WgXcQ --format srt`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscription(cmd, ctx, opts, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (console, json)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")

	rootCmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model size (tiny, base, small, medium, large)")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Transcript format (txt, srt, vtt)")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Transcript destination path")
	rootCmd.Flags().BoolVar(&opts.keepAudio, "keep-audio", false, "Keep the downloaded audio next to the transcript")
	rootCmd.Flags().StringVar(&opts.audioOutput, "audio-output", "", "Move the downloaded audio to this path")
	rootCmd.Flags().StringVarP(&opts.language, "language", "l", "", "Spoken language (ISO 639-1 code; auto-detected when unset)")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newModelsCommand())
	rootCmd.AddCommand(newTestNotifyCommand(ctx))

	return rootCmd
}
