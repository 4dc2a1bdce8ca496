package config

import (
	"errors"
	"fmt"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"scribe/internal/language"
	"scribe/internal/services/whisper"
	"scribe/internal/transcript"
)

// audioFormats lists the yt-dlp extraction targets that produce a
// predictable output file name.
var audioFormats = map[string]struct{}{
	"mp3":    {},
	"m4a":    {},
	"aac":    {},
	"flac":   {},
	"opus":   {},
	"vorbis": {},
	"wav":    {},
	"alac":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateYtdlp(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	return c.validateTimeouts()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("paths.work_dir must be set")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if _, ok := transcript.ParseKind(c.Output.Format); !ok {
		return fmt.Errorf("output.format must be one of %s", transcript.KindNames())
	}
	return nil
}

func (c *Config) validateYtdlp() error {
	if strings.TrimSpace(c.Ytdlp.Binary) == "" {
		return errors.New("ytdlp.binary must be set")
	}
	if _, ok := audioFormats[c.Ytdlp.AudioFormat]; !ok {
		return fmt.Errorf("ytdlp.audio_format %q is not a supported extraction format", c.Ytdlp.AudioFormat)
	}
	if c.Ytdlp.ExtraArgs != "" {
		if _, err := shellwords.NewParser().Parse(c.Ytdlp.ExtraArgs); err != nil {
			return fmt.Errorf("ytdlp.extra_args: %w", err)
		}
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if _, ok := whisper.ParseModel(c.Whisper.Model); !ok {
		return fmt.Errorf("whisper.model must be one of %s", whisper.ModelNames())
	}
	parts, err := shellwords.NewParser().Parse(c.Whisper.Interpreter)
	if err != nil {
		return fmt.Errorf("whisper.interpreter: %w", err)
	}
	if len(parts) == 0 {
		return errors.New("whisper.interpreter must be set")
	}
	switch c.Whisper.Device {
	case "auto", "cpu", "cuda":
	default:
		return errors.New("whisper.device must be auto, cpu, or cuda")
	}
	if c.Whisper.Language != "" && language.ToISO2(c.Whisper.Language) == "" {
		return fmt.Errorf("whisper.language %q is not a recognized ISO 639-1 code (e.g. en, de)", c.Whisper.Language)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"ytdlp.timeout":                 c.Ytdlp.Timeout,
		"whisper.timeout":               c.Whisper.Timeout,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
