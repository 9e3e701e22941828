package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromedpExporter drives Chromium through the DevTools protocol directly.
// The document is written to a temporary file so relative and file URLs
// resolve the same way they do for a browser preview.
type ChromedpExporter struct {
	chromePath string
	timeout    time.Duration
	logger     *slog.Logger
}

func (e *ChromedpExporter) Export(ctx context.Context, html []byte, previewQuality int) (*Result, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, e.timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "mycv-export-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}

	if err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	var ready bool
	if err := chromedp.Run(runCtx, chromedp.Evaluate("("+fontsReadyScript+")()", &ready, awaitPromise)); err != nil {
		e.logger.Warn("Export: document.fonts.ready wait failed, continue", slog.Any("error", err))
	}

	if err := chromedp.Run(runCtx, emulation.SetEmulatedMedia().WithMedia("print")); err != nil {
		return nil, fmt.Errorf("set emulated media to print: %w", err)
	}

	result := &Result{}
	if previewQuality > 0 {
		shot, err := chromedpPreview(runCtx, previewQuality)
		if err != nil {
			e.logger.Warn("Export: capture preview failed", slog.Any("error", err))
		}
		result.Preview = shot
	}

	err = chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		result.PDF, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidth).
			WithPaperHeight(paperHeight).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	return result, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// chromedpPreview captures the first sheet. Under print media the sheets
// stack from the top-left corner, so the first one fills the A4 viewport.
func chromedpPreview(ctx context.Context, quality int) ([]byte, error) {
	var buf []byte
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatJpeg).
			WithQuality(int64(quality)).
			WithClip(&page.Viewport{X: 0, Y: 0, Width: viewportWidth, Height: viewportHeight, Scale: 1}).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}
