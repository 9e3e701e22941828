package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"mycv/internal/theme"
)

// Stylesheet is shared by the preview and the print document. Sizes and
// colors that depend on the theme are inlined per element; this sheet only
// carries the static structure of each skeleton.
const Stylesheet = `
*, *::before, *::after { box-sizing: border-box; }
body { margin: 0; background: #e2e8f0; -webkit-print-color-adjust: exact; print-color-adjust: exact; }
.resume-root { display: flex; flex-direction: column; align-items: center; gap: 2rem; padding: 2rem 0; }
.page-sheet { position: relative; width: 210mm; min-height: 297mm; overflow: hidden; background: #ffffff; box-shadow: 0 25px 50px -12px rgba(0,0,0,.25); }
.sk { min-height: 297mm; }
.grid { display: grid; }
.grid-8-4 { grid-template-columns: 8fr 4fr; gap: 2.5rem; }
.grid-halves { grid-template-columns: 1fr 1fr; gap: 3rem; }
.grid-2-1 { grid-template-columns: 2fr 1fr; gap: 2.5rem; }
.grid-4-8 { grid-template-columns: 4fr 8fr; gap: 3rem; }
.grid-1-2 { grid-template-columns: 1fr 2fr; gap: 2.5rem; }
.muted { color: #64748b; }
.faded { opacity: .75; }
.break-all { word-break: break-all; }
.shadow { box-shadow: 0 10px 15px -3px rgba(0,0,0,.1); }

.name { margin: 0; font-weight: 700; line-height: 1.15; }
.name-caps { text-transform: uppercase; letter-spacing: .1em; }
.name-heavy { font-weight: 900; text-transform: uppercase; letter-spacing: -.05em; }
.job { margin: .5rem 0 0; font-weight: 500; }
.job-caps { font-weight: 700; text-transform: uppercase; letter-spacing: .1em; }
.contact { color: #475569; }
.contact-list { margin-top: 1.5rem; display: flex; flex-direction: column; gap: .75rem; text-align: left; }
.contact-row { display: flex; gap: .75rem; align-items: center; }
.contact-stack { text-align: right; display: flex; flex-direction: column; gap: .25rem; }
.contact-inline { display: flex; justify-content: center; gap: 1.5rem; margin-top: 1.5rem; color: #94a3b8; }
.photo { object-fit: cover; display: block; }
.photo-lg { width: 8rem; height: 8rem; }
.photo-md { width: 6rem; height: 6rem; }
.photo-round { border-radius: 9999px; }
.photo-rounded { border-radius: .75rem; }
.avatar { border-radius: 9999px; display: flex; align-items: center; justify-content: center; font-weight: 700; }
.avatar-md { width: 6rem; height: 6rem; font-size: 1.875rem; color: #ffffff; flex-shrink: 0; }
.avatar-sm { width: 5rem; height: 5rem; font-size: 1.5rem; }

.resume-section { margin-bottom: 1.5rem; break-inside: avoid; page-break-inside: avoid; }
.section-title { margin-top: 0; padding-bottom: .25rem; border-bottom: 2px solid; text-transform: uppercase; letter-spacing: .1em; font-weight: 700; }
.rte-content { line-height: 1.625; }
.rte-content ul { list-style-type: disc; margin-left: 1.2em; padding: 0; }
.item-description { margin-top: .25rem; }
.items { display: flex; flex-direction: column; }
.item { break-inside: avoid; }
.item-head { display: flex; justify-content: space-between; align-items: baseline; gap: 1rem; }
.item-title { margin: 0; font-weight: 700; }
.item-date { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; padding: .125rem .5rem; white-space: nowrap; }
.item-subtitle { font-weight: 700; margin-bottom: .25rem; opacity: .9; }
.tags { display: flex; flex-wrap: wrap; gap: .5rem; }
.tag { padding: .375rem .75rem; border-radius: .375rem; border: 1px solid; font-weight: 500; }

.sk-sidebar-left { display: flex; }
.sl-aside { width: 32%; padding: 2rem; border-right: 1px solid rgba(226,232,240,.5); min-height: 297mm; }
.sl-main { width: 68%; padding: 2.5rem; }
.sl-identity { margin-bottom: 2.5rem; text-align: center; }
.sl-identity .photo { margin: 0 auto 1rem; }

.sk-header-right-aside { padding: 3rem; }
.hr-header { display: flex; justify-content: space-between; align-items: flex-end; border-bottom: 2px solid; padding-bottom: 2rem; margin-bottom: 2.5rem; }
.hr-identity { display: flex; align-items: center; gap: 1.5rem; }

.sk-centered-split { padding: 3rem; }
.cs-header { text-align: center; margin-bottom: 3rem; border-bottom: 1px solid #e2e8f0; padding-bottom: 2.5rem; }

.sk-avatar-header { padding: 2.5rem; }
.ah-header { display: flex; align-items: center; gap: 2rem; border-bottom: 1px solid #e2e8f0; padding-bottom: 2.5rem; margin-bottom: 2.5rem; }
.ah-aside { background: #f8fafc; padding: 1.5rem; border-radius: .75rem; }

.cb-band { padding: 3rem; color: #ffffff; }
.cb-band .job { opacity: .9; }
.cb-body { padding: 3rem; }
.cb-aside { border-right: 1px solid #e2e8f0; padding-right: 2rem; }

.sk-label-strip { padding: 3.5rem; }
.ls-header { margin-bottom: 3.5rem; border-bottom: 1px solid #0f172a; padding-bottom: 2rem; display: flex; justify-content: space-between; align-items: flex-end; }
.ls-rows { display: flex; flex-direction: column; gap: 2.5rem; }
.ls-row { display: grid; grid-template-columns: 3fr 9fr; gap: 1.5rem; }
.ls-label { font-weight: 700; text-transform: uppercase; letter-spacing: .1em; font-size: .875rem; }

.sk-dark-card { padding: 2.5rem; }
.dc-card { background: #0f172a; color: #ffffff; padding: 2.5rem; border-radius: 1.5rem; margin-bottom: 2.5rem; display: flex; justify-content: space-between; align-items: center; }
.dc-card .job { opacity: .8; }
.dc-card .contact { color: inherit; opacity: .7; }
.dc-main { border-left: 1px solid; padding-left: 2.5rem; }

.sk-inverted-sidebar { display: flex; color: #ffffff; }
.is-aside { width: 30%; padding: 2rem; border-right: 1px solid #334155; min-height: 297mm; }
.is-main { width: 70%; padding: 3rem; color: #cbd5e1; min-height: 297mm; }
.is-identity { text-align: center; margin-bottom: 2.5rem; padding: 1rem 0 2rem; border-bottom: 1px solid #334155; }
.is-identity .name { color: #ffffff; }
.is-photo { margin: 0 auto 1rem; border: 4px solid #475569; }
.is-avatar { margin: 0 auto 1rem; background: #334155; border: 2px solid; }
.is-contact { margin-top: .5rem; color: #94a3b8; font-family: ui-monospace, SFMono-Regular, Menlo, monospace; }
.is-block { margin-bottom: 1.5rem; }

.watermark { position: absolute; inset: 0; z-index: 50; display: flex; align-items: center; justify-content: center; pointer-events: none; user-select: none; overflow: hidden; opacity: .5; }
.watermark-mark { transform: rotate(-45deg); opacity: .05; color: #0f172a; font-size: 3.75rem; font-weight: 900; text-transform: uppercase; white-space: nowrap; border: 8px solid #0f172a; padding: 2rem; border-radius: 1.5rem; letter-spacing: .1em; }

@page { size: A4; margin: 0; }
@media print {
	body { background: none; }
	.resume-root { display: block; padding: 0; }
	.page-sheet { box-shadow: none; margin: 0; break-after: page; page-break-after: always; }
	.page-sheet:last-child { break-after: auto; page-break-after: auto; }
}
`

const documentTemplateString = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
{{- with .FontHref}}
<link rel="stylesheet" href="{{.}}">
{{- end}}
<style>{{.Stylesheet}}</style>
</head>
<body>
<div class="resume-root">
{{- range .Pages}}
{{.HTML}}
{{- end}}
</div>
</body>
</html>
`

var documentTemplate = template.Must(template.New("document").Parse(documentTemplateString))

// HTMLDocument wraps rendered pages into a standalone printable document,
// one A4 sheet per page.
func HTMLDocument(title string, pages []Page, th theme.Theme) ([]byte, error) {
	view := struct {
		Title      string
		FontHref   string
		Stylesheet template.CSS
		Pages      []Page
	}{
		Title:      title,
		FontHref:   webFontHref(th.Font),
		Stylesheet: template.CSS(Stylesheet),
		Pages:      pages,
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute document template: %w", err)
	}
	return buf.Bytes(), nil
}

// System families the browser already has.
var localFonts = map[string]bool{
	"Arial":           true,
	"Georgia":         true,
	"Courier New":     true,
	"Times New Roman": true,
}

// webFontHref returns a Google Fonts stylesheet for the first family of
// font when it is one of the design panel's web fonts.
func webFontHref(font string) string {
	first, _, _ := strings.Cut(font, ",")
	first = strings.Trim(strings.TrimSpace(first), `'"`)
	for _, opt := range theme.Fonts() {
		if opt.ID != first || localFonts[opt.ID] {
			continue
		}
		return "https://fonts.googleapis.com/css2?family=" + url.QueryEscape(opt.ID) + ":wght@400;500;700;900&display=swap"
	}
	return ""
}
