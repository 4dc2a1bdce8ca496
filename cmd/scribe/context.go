package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"scribe/internal/config"
)

// commandContext carries the persistent flags and the lazily loaded
// configuration shared by every subcommand.
type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string
	quietFlag     *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string, quietFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
		quietFlag:     quietFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

// applyOverrides folds the logging flags into the loaded config so every
// consumer sees the effective values.
func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if c.logLevelFlag != nil {
		if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
			switch level {
			case "debug", "info", "warn", "error":
				cfg.Logging.Level = level
			default:
				return fmt.Errorf("log level: unsupported value %q (choose one of debug, info, warn, error)", *c.logLevelFlag)
			}
		}
	}
	if c.logFormatFlag != nil {
		if format := strings.ToLower(strings.TrimSpace(*c.logFormatFlag)); format != "" {
			switch format {
			case "console", "json":
				cfg.Logging.Format = format
			default:
				return fmt.Errorf("log format: unsupported value %q (choose console or json)", *c.logFormatFlag)
			}
		}
	}
	return nil
}

func (c *commandContext) quiet() bool {
	return c.quietFlag != nil && *c.quietFlag
}

// describeConfigSource reports where the effective configuration came from.
// Only meaningful after ensureConfig has run.
func (c *commandContext) describeConfigSource() string {
	if c.configErr != nil || c.config == nil {
		return "not loaded"
	}
	if c.configExists {
		return c.configPath
	}
	return fmt.Sprintf("defaults (no file at %s)", c.configPath)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
