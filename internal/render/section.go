package render

import (
	"bytes"
	"fmt"
	"html/template"

	"mycv/internal/resume"
	"mycv/internal/richtext"
	"mycv/internal/theme"
)

// sectionTemplateString 渲染单个区块。富文本字段按受信任的 HTML 输出，
// 样式在 Go 侧拼好后以 template.CSS 传入。
const sectionTemplateString = `<section class="resume-section"{{if .Title}} aria-labelledby="section-{{.ID}}"{{end}}>
{{- if .Title}}<h3 id="section-{{.ID}}" class="section-title" style="{{.HeaderStyle}}">{{.Title}}</h3>{{end}}
{{- if eq .Type "text"}}
	{{- with .Content}}<div class="rte-content" style="{{$.BodyStyle}}">{{.}}</div>{{end}}
{{- else if eq .Type "skills"}}
	<div class="tags" role="list">{{range .Tags}}<span class="tag" role="listitem" style="{{$.TagStyle}}">{{.}}</span>{{end}}</div>
{{- else if eq .Type "list"}}
	<div class="items" style="{{.ListStyle}}">
	{{- range .Items}}
		<article class="item"{{with .Title}} aria-label="{{.}}"{{end}}>
			<div class="item-head"><h4 class="item-title" style="{{$.ItemTitleStyle}}">{{.Title}}</h4>
			{{- with .Date}}<time class="item-date" style="{{$.DateStyle}}">{{.}}</time>{{end}}</div>
			{{- with .Subtitle}}<div class="item-subtitle" style="{{$.SubtitleStyle}}">{{.}}</div>{{end}}
			{{- with .Description}}<div class="rte-content item-description" style="{{$.BodyStyle}}">{{.}}</div>{{end}}
		</article>
	{{- end}}
	</div>
{{- end}}
</section>`

var sectionTemplate = template.Must(template.New("section").Parse(sectionTemplateString))

type sectionView struct {
	ID    string
	Title string
	Type  string

	Content template.HTML
	Tags    []string
	Items   []itemView

	HeaderStyle    template.CSS
	BodyStyle      template.CSS
	TagStyle       template.CSS
	ListStyle      template.CSS
	ItemTitleStyle template.CSS
	DateStyle      template.CSS
	SubtitleStyle  template.CSS
}

type itemView struct {
	Title       string
	Subtitle    string
	Date        string
	Description template.HTML
}

// sectionRenderer carries the per-render options shared by every section.
type sectionRenderer struct {
	sanitizer richtext.Sanitizer
}

func (r sectionRenderer) rich(markup string) template.HTML {
	if r.sanitizer != nil {
		markup = r.sanitizer.Sanitize(markup)
	}
	return template.HTML(markup)
}

// render returns false for sections that produce no output (hidden sections
// and page breaks). th must already be normalized.
func (r sectionRenderer) render(s resume.Section, th theme.Theme, pal Palette) (template.HTML, bool, error) {
	if s.IsBreak() || !s.Visible() {
		return "", false, nil
	}

	pal = pal.withDefaults()
	tokens := theme.ResolveStyles(th.FontSize)

	view := sectionView{
		ID:    s.ID,
		Title: s.Title,
		Type:  string(s.Type),

		HeaderStyle:    css("color:%s;border-color:%s;font-size:%s;margin-bottom:%s;", th.Color, th.Color, tokens.SectionTitle, tokens.Margin),
		BodyStyle:      css("font-size:%s;color:%s;", tokens.Body, pal.Text),
		TagStyle:       css("font-size:%s;background-color:%s;color:%s;border-color:%s;", tokens.Tag, pal.TagBackground, pal.TagText, pal.TagBorder),
		ListStyle:      css("gap:%s;", tokens.Spacing),
		ItemTitleStyle: css("font-size:%s;color:%s;", tokens.ItemTitle, pal.Text),
		DateStyle:      css("font-size:%s;color:%s;", tokens.Date, pal.Date),
		SubtitleStyle:  css("font-size:%s;color:%s;", tokens.ItemSubtitle, pal.subtitle(th.Color)),
	}

	switch s.Type {
	case resume.TypeText:
		if s.Content != "" {
			view.Content = r.rich(s.Content)
		}
	case resume.TypeSkills:
		view.Tags = make([]string, 0, len(s.Items))
		for _, item := range s.Items {
			view.Tags = append(view.Tags, item.Tags...)
		}
	case resume.TypeList:
		view.Items = make([]itemView, 0, len(s.Items))
		for _, item := range s.Items {
			iv := itemView{Title: item.Title, Subtitle: item.Subtitle, Date: item.Date}
			if item.Description != "" {
				iv.Description = r.rich(item.Description)
			}
			view.Items = append(view.Items, iv)
		}
	}

	var buf bytes.Buffer
	if err := sectionTemplate.Execute(&buf, view); err != nil {
		return "", false, fmt.Errorf("execute section template %q: %w", s.ID, err)
	}
	return template.HTML(buf.String()), true, nil
}

// RenderSection turns one section into an HTML fragment. The second
// result is false when the section is hidden, is a page break, or could
// not be rendered. Rich fields are emitted verbatim.
func RenderSection(s resume.Section, th theme.Theme, pal Palette) (template.HTML, bool) {
	out, ok, err := sectionRenderer{}.render(s, th.Normalize(""), pal)
	if err != nil {
		return "", false
	}
	return out, ok
}

func css(format string, args ...any) template.CSS {
	return template.CSS(fmt.Sprintf(format, args...))
}
