// Package printing assembles a stored or submitted resume into rendered
// pages and a printable HTML document.
package printing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mycv/internal/config"
	"mycv/internal/database"
	"mycv/internal/metrics"
	"mycv/internal/render"
	"mycv/internal/resume"
	"mycv/internal/richtext"
	"mycv/internal/theme"
)

// Job 描述一次渲染：文档、主题、模板以及是否去除水印。
type Job struct {
	Title      string
	Document   resume.Document
	Theme      theme.Theme
	TemplateID string
	Premium    bool
}

// Service 持有渲染配置，可被多个 goroutine 共享。
type Service struct {
	defaultTemplate string
	sanitizer       richtext.Sanitizer
}

// New builds a Service from the render section of the config.
func New(cfg config.RenderConfig) *Service {
	s := &Service{defaultTemplate: strings.TrimSpace(cfg.DefaultTemplate)}
	if s.defaultTemplate == "" {
		s.defaultTemplate = render.DefaultTemplateID
	}
	if cfg.SanitizeRichText {
		s.sanitizer = richtext.NewPolicy()
	}
	return s
}

// TemplateID returns the layout id that will be used for requested.
func (s *Service) TemplateID(requested string) string {
	if strings.TrimSpace(requested) == "" {
		requested = s.defaultTemplate
	}
	lay, _ := render.Lookup(requested)
	return lay.ID
}

// Pages renders job and records render metrics.
func (s *Service) Pages(job Job) ([]render.Page, error) {
	templateID := s.TemplateID(job.TemplateID)
	start := time.Now()
	pages, err := render.Render(job.Document, job.Theme, templateID, render.Options{
		Premium:   job.Premium,
		Sanitizer: s.sanitizer,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", templateID, err)
	}
	metrics.ObserveRender(templateID, len(pages), time.Since(start))
	return pages, nil
}

// HTML renders job into a standalone printable document.
func (s *Service) HTML(job Job) ([]byte, error) {
	pages, err := s.Pages(job)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(job.Title)
	if title == "" && job.Document.Basics != nil {
		title = job.Document.Basics.FullName
	}
	if title == "" {
		title = "Resume"
	}
	lay, _ := render.Lookup(s.TemplateID(job.TemplateID))
	return render.HTMLDocument(title, pages, job.Theme.Normalize(lay.DefaultFont))
}

// FromResume decodes a stored row into a Job. An empty theme column means
// the default theme.
func FromResume(row database.Resume, premium bool) (Job, error) {
	job := Job{
		Title:      row.Title,
		Theme:      theme.Default(),
		TemplateID: row.TemplateID,
		Premium:    premium,
	}
	if len(row.Content) > 0 {
		doc, err := resume.Decode(row.Content, resume.FormatJSON)
		if err != nil {
			return Job{}, fmt.Errorf("decode resume %d content: %w", row.ID, err)
		}
		job.Document = doc
	}
	if len(row.Theme) > 0 && string(row.Theme) != "null" {
		var th theme.Theme
		if err := json.Unmarshal(row.Theme, &th); err != nil {
			return Job{}, fmt.Errorf("decode resume %d theme: %w", row.ID, err)
		}
		job.Theme = th
	}
	return job, nil
}
