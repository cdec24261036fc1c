package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"contactsheet/internal/extraction"
	"contactsheet/internal/fileutil"
	"contactsheet/internal/history"
	"contactsheet/internal/stage"
	"contactsheet/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string
	var interval float64
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a contact sheet from a video",
		Long: "Probe the input video, take a thumbnail every --interval seconds, " +
			"and print the thumbnails as a gallery PDF in the output directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			b, err := ctx.backends(cfg, logger)
			if err != nil {
				return err
			}

			var opts []workflow.ManagerOption
			if cfg.History.Enabled {
				store, err := history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
				opts = append(opts, workflow.WithRecorder(store))
			}

			p := buildPipeline(cfg, logger, b, opts...)
			errOut := cmd.ErrOrStderr()
			if !noProgress && shouldColorize(errOut) {
				bar := newPacketBar(errOut)
				p.extractor.OnProgress(bar.update)
				defer bar.finish()
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rc := stage.New("", input, output, interval)
			result := p.manager.Run(runCtx, rc)
			return reportRun(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Video to sample (defaults to paths.default_input)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory for thumbnails and the PDF (defaults to paths.default_output_dir)")
	cmd.Flags().Float64VarP(&interval, "interval", "n", 0, "Seconds between thumbnails (defaults to sampling.interval_seconds)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the packet progress bar")
	return cmd
}

func reportRun(out io.Writer, result workflow.Result) error {
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "Warning: %s (%s): %v\n", warning.Stage, warning.Kind, warning.Err)
	}
	if failure := result.Failure; failure != nil {
		fmt.Fprintf(out, "Run failed in %s (%s) after %d thumbnails\n", failure.Stage, failure.Kind, result.Thumbnails())
		return failure
	}

	rc := result.Context
	fmt.Fprintf(out, "Thumbnails: %d\n", result.Thumbnails())
	fmt.Fprintf(out, "Gallery:    %s\n", rc.GalleryPath)
	size := fileutil.FileSize(rc.DocumentPath)
	if size > 0 {
		fmt.Fprintf(out, "Document:   %s (%s)\n", rc.DocumentPath, humanize.Bytes(uint64(size)))
	} else {
		fmt.Fprintf(out, "Document:   %s\n", rc.DocumentPath)
	}
	fmt.Fprintf(out, "Elapsed:    %s\n", result.Elapsed.Round(time.Millisecond))
	return nil
}

// packetBar draws extraction progress; the total is only known once the
// first packet reports.
type packetBar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func newPacketBar(out io.Writer) *packetBar {
	return &packetBar{out: out}
}

func (p *packetBar) update(progress extraction.Progress) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(progress.Packets,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("Extracting packets"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(progress.Packet)
}

func (p *packetBar) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
