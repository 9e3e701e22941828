// Package theme resolves the design panel selection (accent color, font
// family, font-size tier) into the typographic tokens used by every
// layout.
package theme

import (
	"regexp"
	"strings"
)

// FontSize is a discrete typography tier.
type FontSize string

const (
	Small  FontSize = "small"
	Medium FontSize = "medium"
	Large  FontSize = "large"
)

const (
	DefaultColor = "#0ea5a4"
	DefaultFont  = "Inter, system-ui, -apple-system, sans-serif"
	MonoFont     = "ui-monospace, SFMono-Regular, Menlo, monospace"
)

// Theme is the visual configuration applied uniformly to a document.
type Theme struct {
	Color    string   `json:"color" yaml:"color"`
	Font     string   `json:"font" yaml:"font"`
	FontSize FontSize `json:"fontSize" yaml:"fontSize"`
}

// Default is the theme used when the caller supplies none.
func Default() Theme {
	return Theme{Color: DefaultColor, Font: DefaultFont, FontSize: Medium}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Normalize fills empty fields and clamps invalid values to defaults: a
// color that is not a hex literal becomes DefaultColor, unknown tiers
// become Medium. fallbackFont replaces an empty font; an empty
// fallbackFont means DefaultFont.
func (t Theme) Normalize(fallbackFont string) Theme {
	t.Color = strings.TrimSpace(t.Color)
	if !hexColor.MatchString(t.Color) {
		t.Color = DefaultColor
	}
	t.Font = cleanFontFamily(t.Font)
	if t.Font == "" {
		t.Font = fallbackFont
		if t.Font == "" {
			t.Font = DefaultFont
		}
	}
	t.FontSize = t.FontSize.normalize()
	return t
}

// cleanFontFamily keeps the characters a CSS font-family list needs, so
// the value can be placed inside a style attribute as-is.
func cleanFontFamily(font string) string {
	var b strings.Builder
	for _, r := range font {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == ',', r == '\'', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func (f FontSize) normalize() FontSize {
	switch f {
	case Small, Medium, Large:
		return f
	default:
		return Medium
	}
}

// StyleTokens are CSS lengths for each typographic role.
type StyleTokens struct {
	Tier         FontSize
	Name         string
	Job          string
	Contact      string
	SectionTitle string
	ItemTitle    string
	ItemSubtitle string
	Body         string
	Date         string
	Tag          string
	// Spacing separates list items; Margin separates blocks.
	Spacing string
	Margin  string
}

var styleTable = map[FontSize]StyleTokens{
	Small: {
		Tier:         Small,
		Name:         "1.875rem",
		Job:          "0.875rem",
		Contact:      "0.75rem",
		SectionTitle: "0.875rem",
		ItemTitle:    "0.875rem",
		ItemSubtitle: "0.75rem",
		Body:         "0.75rem",
		Date:         "0.75rem",
		Tag:          "0.75rem",
		Spacing:      "0.75rem",
		Margin:       "0.75rem",
	},
	Medium: {
		Tier:         Medium,
		Name:         "2.25rem",
		Job:          "1.125rem",
		Contact:      "0.875rem",
		SectionTitle: "1rem",
		ItemTitle:    "1rem",
		ItemSubtitle: "0.875rem",
		Body:         "0.875rem",
		Date:         "0.875rem",
		Tag:          "0.875rem",
		Spacing:      "1rem",
		Margin:       "1rem",
	},
	Large: {
		Tier:         Large,
		Name:         "3rem",
		Job:          "1.25rem",
		Contact:      "1rem",
		SectionTitle: "1.25rem",
		ItemTitle:    "1.25rem",
		ItemSubtitle: "1.125rem",
		Body:         "1rem",
		Date:         "0.875rem",
		Tag:          "0.875rem",
		Spacing:      "1.25rem",
		Margin:       "1.25rem",
	},
}

// ResolveStyles looks up the token scale for a tier. Unknown tiers
// resolve to Medium. The table is never mutated, so results are stable.
func ResolveStyles(size FontSize) StyleTokens {
	return styleTable[size.normalize()]
}
