package render

import (
	"strconv"
	"strings"

	"mycv/internal/theme"
)

// Skeleton identifies one of the page arrangements shared by the gallery.
type Skeleton string

const (
	SkeletonSidebarLeft      Skeleton = "sidebar-left"
	SkeletonHeaderRightAside Skeleton = "header-right-aside"
	SkeletonCenteredSplit    Skeleton = "centered-split"
	SkeletonAvatarHeader     Skeleton = "avatar-header"
	SkeletonColorBand        Skeleton = "color-band"
	SkeletonLabelStrip       Skeleton = "label-strip"
	SkeletonDarkCard         Skeleton = "dark-card"
	SkeletonInvertedSidebar  Skeleton = "inverted-sidebar"
)

// DefaultTemplateID is used whenever a template id cannot be resolved.
const DefaultTemplateID = "t1"

// Layout is one gallery entry: an id and display name bound to a skeleton
// plus the presentation defaults that skeleton carries.
type Layout struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Skeleton Skeleton `json:"skeleton"`

	// DefaultFont applies when the theme names no font.
	DefaultFont string `json:"-"`
	// Palette colors the section bodies.
	Palette Palette `json:"-"`
	// Background is the CSS background of the whole sheet.
	Background string `json:"-"`
	// TextColor is the base text color of the whole sheet.
	TextColor string `json:"-"`
}

var baseLayouts = [...]Layout{
	{
		Skeleton:   SkeletonSidebarLeft,
		Background: "linear-gradient(to right, #f8fafc 32%, #ffffff 32%)",
		TextColor:  "#1e293b",
	},
	{Skeleton: SkeletonHeaderRightAside, TextColor: "#0f172a"},
	{Skeleton: SkeletonCenteredSplit, TextColor: "#1e293b"},
	{Skeleton: SkeletonAvatarHeader, TextColor: "#1e293b"},
	{Skeleton: SkeletonColorBand, TextColor: "#1e293b"},
	{Skeleton: SkeletonLabelStrip, DefaultFont: theme.MonoFont, TextColor: "#1e293b"},
	{Skeleton: SkeletonDarkCard, TextColor: "#1e293b"},
	{
		Skeleton:   SkeletonInvertedSidebar,
		Palette:    DarkPalette,
		Background: "linear-gradient(to right, #1e293b 30%, #0f172a 30%)",
		TextColor:  "#ffffff",
	},
}

var galleryNames = [...]string{
	"Modern Grid", "Clean Right", "Classic Split", "Avatar Header",
	"Bold Creative", "Minimal Mono", "Timeline Exec", "Dark Tech",
	"Rx Onyx", "Rx Pike", "Rx Kakuna", "Corporate",
	"Designer", "Scholar", "Startup", "Glitch",
	"Compact", "Influencer", "Euro", "Boxed",
}

// t9..t16 repeat the eight skeletons, t17..t20 repeat the first four.
var registry = func() []Layout {
	out := make([]Layout, len(galleryNames))
	for i, name := range galleryNames {
		l := baseLayouts[i%len(baseLayouts)]
		l.ID = "t" + strconv.Itoa(i+1)
		l.Name = name
		out[i] = l
	}
	return out
}()

// Templates lists the gallery in display order.
func Templates() []Layout {
	out := make([]Layout, len(registry))
	copy(out, registry)
	return out
}

// Lookup resolves "t7", "T7" or "7". Unknown ids resolve to the default
// layout and report false.
func Lookup(id string) (Layout, bool) {
	id = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(id)), "t")
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > len(registry) {
		return registry[0], false
	}
	return registry[n-1], true
}
