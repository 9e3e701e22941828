// Package render turns a resume document into A4 pages of HTML using one of
// the gallery layouts.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"mycv/internal/layout"
	"mycv/internal/resume"
	"mycv/internal/richtext"
	"mycv/internal/theme"
)

// Options control branding and how rich fields are treated.
type Options struct {
	// Premium suppresses the branding watermark.
	Premium bool
	// Sanitizer, when set, cleans every rich field before output.
	Sanitizer richtext.Sanitizer
}

// Page is one rendered A4 sheet.
type Page struct {
	Index   int
	Columns layout.Columns
	HTML    template.HTML
}

type labelRow struct {
	Label string
	Body  template.HTML
}

type styleSet struct {
	Name             template.CSS
	Job              template.CSS
	Contact          template.CSS
	AccentColor      template.CSS
	AccentBorder     template.CSS
	AccentBackground template.CSS
}

type pageView struct {
	Index    int
	Skeleton Skeleton
	Header   bool
	Basics   resume.Basics
	Photo    template.URL
	Initials string
	Initial  string

	Left  []template.HTML
	Right []template.HTML
	Rows  []labelRow

	S styleSet

	PageStyle template.CSS
	Body      template.HTML
	Watermark bool
}

// Render paginates doc and draws every page with the layout named by
// templateID (unknown ids fall back to t1). A document without basics or
// sections yields no pages. Only template execution failures are errors.
func Render(doc resume.Document, th theme.Theme, templateID string, opts Options) ([]Page, error) {
	if !doc.Loaded() {
		return nil, nil
	}

	lay, _ := Lookup(templateID)
	th = th.Normalize(lay.DefaultFont)
	sr := sectionRenderer{sanitizer: opts.Sanitizer}
	styles := newStyleSet(th)

	basics := *doc.Basics
	photo := photoURL(basics.Image)
	pageStyle := css("font-family:%s;color:%s;", th.Font, lay.TextColor)
	if lay.Background != "" {
		pageStyle += css("background:%s;", lay.Background)
	}

	split := layout.SplitIntoPages(doc.Sections)
	pages := make([]Page, 0, len(split))
	for idx, sections := range split {
		cols := layout.RouteColumns(sections)
		view := pageView{
			Index:     idx,
			Skeleton:  lay.Skeleton,
			Header:    idx == 0,
			Basics:    basics,
			Photo:     photo,
			Initials:  initials(basics.FullName, 2),
			Initial:   initials(basics.FullName, 1),
			S:         styles,
			PageStyle: pageStyle,
			Watermark: !opts.Premium && idx == 0,
		}

		var err error
		if lay.Skeleton == SkeletonLabelStrip {
			view.Rows, err = labelRows(sr, sections, th, lay.Palette)
		} else {
			view.Left, err = renderAll(sr, cols.Left, th, lay.Palette)
			if err == nil {
				view.Right, err = renderAll(sr, cols.Right, th, lay.Palette)
			}
		}
		if err != nil {
			return nil, err
		}

		out, err := executePage(view)
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{Index: idx, Columns: cols, HTML: out})
	}
	return pages, nil
}

func executePage(view pageView) (template.HTML, error) {
	var body bytes.Buffer
	if err := skeletonTemplates.ExecuteTemplate(&body, string(view.Skeleton), view); err != nil {
		return "", fmt.Errorf("execute skeleton %s: %w", view.Skeleton, err)
	}
	view.Body = template.HTML(body.String())

	var page bytes.Buffer
	if err := skeletonTemplates.ExecuteTemplate(&page, "page", view); err != nil {
		return "", fmt.Errorf("execute page %d: %w", view.Index, err)
	}
	return template.HTML(page.String()), nil
}

func renderAll(sr sectionRenderer, sections []resume.Section, th theme.Theme, pal Palette) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(sections))
	for _, s := range sections {
		h, ok, err := sr.render(s, th, pal)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// labelRows ignores columns: the label strip lists sections in stored
// order with the title moved into the left label.
func labelRows(sr sectionRenderer, sections []resume.Section, th theme.Theme, pal Palette) ([]labelRow, error) {
	rows := make([]labelRow, 0, len(sections))
	for _, s := range sections {
		label := s.Title
		s.Title = ""
		h, ok, err := sr.render(s, th, pal)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, labelRow{Label: label, Body: h})
		}
	}
	return rows, nil
}

func newStyleSet(th theme.Theme) styleSet {
	tokens := theme.ResolveStyles(th.FontSize)
	return styleSet{
		Name:             css("font-size:%s;", tokens.Name),
		Job:              css("font-size:%s;", tokens.Job),
		Contact:          css("font-size:%s;", tokens.Contact),
		AccentColor:      css("color:%s;", th.Color),
		AccentBorder:     css("border-color:%s;", th.Color),
		AccentBackground: css("background-color:%s;", th.Color),
	}
}

// photoURL accepts inline images and http(s) links; anything else is
// dropped so the identity block falls back to initials.
func photoURL(raw string) template.URL {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"):
		return template.URL(raw)
	default:
		return ""
	}
}

func initials(name string, n int) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
