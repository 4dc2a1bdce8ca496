package config

import (
	"fmt"
	"strings"

	"scribe/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeYtdlp()
	c.normalizeWhisper()
	c.normalizeNotifications()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir()
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
}

func (c *Config) normalizeYtdlp() {
	c.Ytdlp.Binary = strings.TrimSpace(c.Ytdlp.Binary)
	if c.Ytdlp.Binary == "" {
		c.Ytdlp.Binary = defaultYtdlpBinary
	}
	c.Ytdlp.AudioFormat = strings.ToLower(strings.TrimSpace(c.Ytdlp.AudioFormat))
	if c.Ytdlp.AudioFormat == "" {
		c.Ytdlp.AudioFormat = defaultAudioFormat
	}
	c.Ytdlp.AudioQuality = strings.TrimSpace(c.Ytdlp.AudioQuality)
	if c.Ytdlp.AudioQuality == "" {
		c.Ytdlp.AudioQuality = defaultAudioQuality
	}
	c.Ytdlp.ExtraArgs = strings.TrimSpace(c.Ytdlp.ExtraArgs)
	if c.Ytdlp.Timeout <= 0 {
		c.Ytdlp.Timeout = defaultFetchTimeout
	}
}

func (c *Config) normalizeWhisper() {
	c.Whisper.Model = strings.ToLower(strings.TrimSpace(c.Whisper.Model))
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	c.Whisper.Interpreter = strings.TrimSpace(c.Whisper.Interpreter)
	if c.Whisper.Interpreter == "" {
		c.Whisper.Interpreter = defaultInterpreter
	}
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	if c.Whisper.Device == "" {
		c.Whisper.Device = defaultDevice
	}
	c.Whisper.ComputeType = strings.ToLower(strings.TrimSpace(c.Whisper.ComputeType))
	if c.Whisper.ComputeType == "" {
		c.Whisper.ComputeType = defaultComputeType
	}
	if c.Whisper.BeamSize < 1 {
		c.Whisper.BeamSize = defaultBeamSize
	}
	c.Whisper.Language = strings.ToLower(strings.TrimSpace(c.Whisper.Language))
	if c.Whisper.Language != "" {
		// Word and 3-letter forms collapse to ISO 639-1; unknown values are
		// left for Validate to reject.
		if mapped := language.ToISO2(c.Whisper.Language); mapped != "" {
			c.Whisper.Language = mapped
		}
	}
	if c.Whisper.Timeout <= 0 {
		c.Whisper.Timeout = defaultTranscribeTimeout
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Directory = strings.TrimSpace(c.Logging.Directory)
	if c.Logging.Directory != "" {
		expanded, err := expandPath(c.Logging.Directory)
		if err != nil {
			return fmt.Errorf("logging.directory: %w", err)
		}
		c.Logging.Directory = expanded
	}
	return nil
}
