// Package export prints rendered resume HTML to PDF and captures a JPEG
// preview with a headless Chromium.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mycv/internal/config"
)

// A4 in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

// A4 at 96 DPI, used as the viewport for previews.
const (
	viewportWidth  = 794
	viewportHeight = 1123
)

// DefaultPreviewQuality is the JPEG quality used for resume thumbnails.
const DefaultPreviewQuality = 80

// Result holds the artifacts of one export. Preview is nil when it was not
// requested or could not be captured; a failed preview never fails the PDF.
type Result struct {
	PDF     []byte
	Preview []byte
}

// Exporter turns a standalone HTML document into a PDF.
type Exporter interface {
	// Export loads html in a fresh page and prints it. previewQuality <= 0
	// skips the preview.
	Export(ctx context.Context, html []byte, previewQuality int) (*Result, error)
}

// New picks the driver named in cfg.
func New(cfg config.ExportConfig, logger *slog.Logger) (Exporter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	switch cfg.Driver {
	case "", config.DriverRod:
		return &RodExporter{chromePath: cfg.ChromePath, timeout: timeout, logger: logger}, nil
	case config.DriverChromedp:
		return &ChromedpExporter{chromePath: cfg.ChromePath, timeout: timeout, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported export driver %q", cfg.Driver)
	}
}

// fontsReadyScript 等待 WebFont 就绪，避免回退字体度量导致排版差异。
const fontsReadyScript = `() => {
  if (document && document.fonts && document.fonts.ready) {
    return Promise.race([
      document.fonts.ready.then(() => true),
      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
    ]);
  }
  return true;
}`
