package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"mycv/internal/config"
	"mycv/internal/printing"
)

var (
	renderFlags  jobFlags
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document to a printable HTML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadLocal()
		if err != nil {
			return err
		}
		doc, _, err := readDocument(args[0])
		if err != nil {
			return err
		}

		printer := printing.New(cfg.Render)
		job := renderFlags.job(doc)
		html, err := printer.HTML(job)
		if err != nil {
			return err
		}
		slog.Debug("rendered document",
			slog.String("template", printer.TemplateID(job.TemplateID)),
			slog.Int("bytes", len(html)),
		)
		return writeOutput(cmd, renderOutput, html)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default stdout)")
}
