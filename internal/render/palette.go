package render

// Palette overrides the colors a section is drawn with, so one renderer
// serves light and dark layouts. Empty fields take the DefaultPalette
// value, except Subtitle, which falls back to the theme accent.
type Palette struct {
	Text          string
	Subtitle      string
	Date          string
	TagBackground string
	TagText       string
	TagBorder     string
}

// DefaultPalette is used on light backgrounds.
var DefaultPalette = Palette{
	Text:          "#0f172a",
	Date:          "#64748b",
	TagBackground: "#f1f5f9",
	TagText:       "#334155",
	TagBorder:     "#e2e8f0",
}

// DarkPalette is used by the inverted-color skeleton.
var DarkPalette = Palette{
	Text:          "#cbd5e1",
	Subtitle:      "#94a3b8",
	Date:          "#94a3b8",
	TagBackground: "#1e293b",
	TagText:       "#cbd5e1",
	TagBorder:     "#334155",
}

func (p Palette) withDefaults() Palette {
	if p.Text == "" {
		p.Text = DefaultPalette.Text
	}
	if p.Date == "" {
		p.Date = DefaultPalette.Date
	}
	if p.TagBackground == "" {
		p.TagBackground = DefaultPalette.TagBackground
	}
	if p.TagText == "" {
		p.TagText = DefaultPalette.TagText
	}
	if p.TagBorder == "" {
		p.TagBorder = DefaultPalette.TagBorder
	}
	return p
}

func (p Palette) subtitle(accent string) string {
	if p.Subtitle != "" {
		return p.Subtitle
	}
	return accent
}
