package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mycv/internal/printing"
	"mycv/internal/resume"
	"mycv/internal/theme"
)

// jobFlags 是 render 与 export 共用的参数。
type jobFlags struct {
	template string
	color    string
	font     string
	size     string
	premium  bool
	title    string
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Layout id, t1 to t20 (default from RENDER_DEFAULT_TEMPLATE)")
	cmd.Flags().StringVar(&f.color, "color", "", "Accent color as a hex literal")
	cmd.Flags().StringVar(&f.font, "font", "", "CSS font family")
	cmd.Flags().StringVar(&f.size, "size", string(theme.Medium), "Font size tier: small, medium or large")
	cmd.Flags().BoolVar(&f.premium, "premium", false, "Omit the branding watermark")
	cmd.Flags().StringVar(&f.title, "title", "", "Document title (defaults to the full name)")
}

func (f *jobFlags) job(doc resume.Document) printing.Job {
	th := theme.Default()
	if f.color != "" {
		th.Color = f.color
	}
	if f.font != "" {
		th.Font = f.font
	}
	th.FontSize = theme.FontSize(f.size)
	return printing.Job{
		Title:      f.title,
		Document:   doc,
		Theme:      th,
		TemplateID: f.template,
		Premium:    f.premium,
	}
}

// readDocument 读取文件并返回文档及其 JSON 形式，"-" 表示标准输入（按 JSON 解析）。
func readDocument(path string) (resume.Document, []byte, error) {
	var (
		data []byte
		err  error
	)
	format := resume.FormatFromPath(path)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return resume.Document{}, nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := resume.Decode(data, format)
	if err != nil {
		return resume.Document{}, nil, err
	}
	if format == resume.FormatJSON {
		return doc, data, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return resume.Document{}, nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, raw, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
