package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStylesIsPure(t *testing.T) {
	for _, size := range []FontSize{Small, Medium, Large} {
		first := ResolveStyles(size)
		second := ResolveStyles(size)
		require.Equal(t, first, second)
		assert.Equal(t, size, first.Tier)
	}
}

func TestResolveStylesTiersDiffer(t *testing.T) {
	small, medium, large := ResolveStyles(Small), ResolveStyles(Medium), ResolveStyles(Large)
	assert.NotEqual(t, small, medium)
	assert.NotEqual(t, medium, large)
	assert.Equal(t, "3rem", large.Name)
	assert.Equal(t, "1.25rem", large.SectionTitle)
	assert.Equal(t, "0.75rem", small.Body)
}

func TestResolveStylesUnknownTier(t *testing.T) {
	assert.Equal(t, ResolveStyles(Medium), ResolveStyles("huge"))
	assert.Equal(t, ResolveStyles(Medium), ResolveStyles(""))
}

func TestNormalize(t *testing.T) {
	got := Theme{}.Normalize("")
	assert.Equal(t, Default(), got)

	got = Theme{Color: "#111111", FontSize: "xl"}.Normalize(MonoFont)
	assert.Equal(t, Theme{Color: "#111111", Font: MonoFont, FontSize: Medium}, got)

	got = Theme{Font: "Georgia, serif", FontSize: Large}.Normalize(MonoFont)
	assert.Equal(t, "Georgia, serif", got.Font)
	assert.Equal(t, Large, got.FontSize)
}

func TestNormalizeRejectsUnsafeValues(t *testing.T) {
	got := Theme{Color: "red;background:url(x)", Font: `'Roboto'; color: red}</style>`}.Normalize("")
	assert.Equal(t, DefaultColor, got.Color)
	assert.Equal(t, "'Roboto' color redstyle", got.Font)

	got = Theme{Color: " #ABC "}.Normalize("")
	assert.Equal(t, "#ABC", got.Color)
}

func TestDesignOptions(t *testing.T) {
	assert.Len(t, Fonts(), 12)
	assert.Len(t, Colors(), 8)
	require.Len(t, Sizes(), 3)
	assert.Equal(t, Small, Sizes()[0].ID)
}
