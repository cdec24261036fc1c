package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contactsheet/internal/logging"
	"contactsheet/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools, directories, and stage readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			statuses := preflight.CheckSystemDeps(cfg)
			lines = append(lines, dependencyLines(statuses, colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Paths", colorize)...)
			results := preflight.RunAll(cmd.Context(), cfg)
			lines = append(lines, preflightLines(results, colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Stages", colorize)...)
			b, err := ctx.backends(cfg, logging.NewNop())
			if err != nil {
				lines = append(lines, renderStatusLine("Backends", statusError, err.Error(), colorize))
			} else {
				p := buildPipeline(cfg, logging.NewNop(), b)
				lines = append(lines, stageHealthLines(p.manager.HealthChecks(cmd.Context()), colorize)...)
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Settings", colorize)...)
			lines = append(lines,
				renderStatusLine("Interval", statusInfo, fmt.Sprintf("%gs", cfg.Sampling.IntervalSeconds), colorize),
				renderStatusLine("Packet size", statusInfo, fmt.Sprintf("%d", cfg.Sampling.PacketSize), colorize),
				renderStatusLine("Page", statusInfo, fmt.Sprintf("%s %s", cfg.Render.Format, cfg.Render.Orientation), colorize),
				renderStatusLine("History", statusInfo, yesNo(cfg.History.Enabled), colorize),
				renderStatusLine("Notifications", statusInfo, yesNo(strings.TrimSpace(cfg.Notifications.NtfyTopic) != ""), colorize),
			)

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}
