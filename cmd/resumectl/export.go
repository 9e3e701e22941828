package main

import (
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mycv/internal/config"
	"mycv/internal/export"
	"mycv/internal/metrics"
	"mycv/internal/printing"
)

var (
	exportFlags   jobFlags
	exportOutput  string
	exportPreview string
	exportDriver  string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export a document to PDF with a headless Chromium",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOutput == "" {
			return errors.New("--output is required")
		}
		cfg, err := config.LoadLocal()
		if err != nil {
			return err
		}
		if exportDriver != "" {
			cfg.Export.Driver = exportDriver
		}
		doc, _, err := readDocument(args[0])
		if err != nil {
			return err
		}

		html, err := printing.New(cfg.Render).HTML(exportFlags.job(doc))
		if err != nil {
			return err
		}

		exporter, err := export.New(cfg.Export, slog.Default())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		quality := 0
		if exportPreview != "" {
			quality = export.DefaultPreviewQuality
		}
		start := time.Now()
		result, err := exporter.Export(ctx, html, quality)
		metrics.ObserveExport(cfg.Export.Driver, err, time.Since(start))
		if err != nil {
			return err
		}

		if err := writeOutput(cmd, exportOutput, result.PDF); err != nil {
			return err
		}
		if exportPreview != "" {
			if len(result.Preview) == 0 {
				slog.Warn("preview was not captured")
			} else if err := writeOutput(cmd, exportPreview, result.Preview); err != nil {
				return err
			}
		}
		slog.Info("exported pdf",
			slog.String("driver", cfg.Export.Driver),
			slog.String("output", exportOutput),
			slog.Int("bytes", len(result.PDF)),
			slog.Duration("elapsed", time.Since(start)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "PDF output file")
	exportCmd.Flags().StringVar(&exportPreview, "preview", "", "Optional JPEG preview of the first page")
	exportCmd.Flags().StringVar(&exportDriver, "driver", "", "Export driver: rod or chromedp (default from EXPORT_DRIVER)")
}

