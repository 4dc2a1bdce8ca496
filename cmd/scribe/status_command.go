package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools and environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintln(out, renderSectionHeader("External tools", colorize))
			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				rows = append(rows, []string{status.Name, dependencyStateLabel(status, colorize), status.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Tool", "Status", "Detail"}, rows))
			fmt.Fprintln(out)

			fmt.Fprintln(out, renderSectionHeader("Environment", colorize))
			fmt.Fprintln(out, directoryStatusLine("Work directory", cfg.Paths.WorkDir, colorize))
			if strings.TrimSpace(cfg.Paths.OutputDir) == "" {
				fmt.Fprintln(out, renderStatusLine("Output directory", statusInfo, "Current directory", colorize))
			} else {
				fmt.Fprintln(out, directoryStatusLine("Output directory", cfg.Paths.OutputDir, colorize))
			}
			fmt.Fprintln(out, notificationsStatusLine(cmd, cfg, colorize))

			fmt.Fprintf(out, "\nConfig: %s\n", ctx.describeConfigSource())
			return nil
		},
	}
}

func dependencyStateLabel(status deps.Status, colorize bool) string {
	label, color := "MISSING", ansiRed
	switch {
	case status.Available:
		label, color = "OK", ansiGreen
	case status.Optional:
		label, color = "OPTIONAL", ansiYellow
	}
	if colorize {
		return color + label + ansiReset
	}
	return label
}

func directoryStatusLine(label, path string, colorize bool) string {
	result := preflight.CheckDirectoryAccess(label, path)
	if result.Passed {
		return renderStatusLine(label, statusOK, result.Detail, colorize)
	}
	return renderStatusLine(label, statusError, result.Detail, colorize)
}

func notificationsStatusLine(cmd *cobra.Command, cfg *config.Config, colorize bool) string {
	result := preflight.CheckNotificationsFromConfig(cmd.Context(), cfg)
	kind := statusWarn
	switch {
	case result.Passed && result.Detail == "Disabled":
		kind = statusInfo
	case result.Passed:
		kind = statusOK
	}
	return renderStatusLine("Notifications", kind, result.Detail, colorize)
}
