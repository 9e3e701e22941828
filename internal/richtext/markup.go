// Package richtext implements the editor toolbar transforms applied to
// free-text fields before they are rendered.
package richtext

import "unicode/utf8"

// Tag is an editor toolbar action.
type Tag string

const (
	Bold      Tag = "b"
	Italic    Tag = "i"
	Underline Tag = "u"
	ListItem  Tag = "li"
	LineBreak Tag = "br"
)

const lineBreakToken = "<br/>"

// Known reports whether the tag is one of the toolbar actions.
func (t Tag) Known() bool {
	switch t {
	case Bold, Italic, Underline, ListItem, LineBreak:
		return true
	}
	return false
}

// ApplyInlineMarkup splices markup into text:
//
//	text[:start] + wrap(text[start:end]) + text[end:]
//
// Offsets count characters (runes), not bytes. They are clamped into the
// text and swapped when reversed. Wrapping tags surround the selection;
// LineBreak appends a line-break token to the selection, which places it
// at the cursor when nothing is selected. Unknown tags leave the text
// unchanged. Existing markup is never inspected.
func ApplyInlineMarkup(text string, start, end int, tag Tag) string {
	if !tag.Known() {
		return text
	}
	n := utf8.RuneCountInString(text)
	start, end = clamp(start, n), clamp(end, n)
	if start > end {
		start, end = end, start
	}
	// 只在原字符串上按字节切片，选区外的字节（包括非法 UTF-8）原样保留。
	lo, hi := byteOffset(text, start), byteOffset(text, end)
	return text[:lo] + wrap(text[lo:hi], tag) + text[hi:]
}

// byteOffset converts a rune offset into a byte offset. An invalid byte
// counts as one rune, as utf8.RuneCountInString does.
func byteOffset(text string, runes int) int {
	i := 0
	for ; runes > 0 && i < len(text); runes-- {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return i
}

func wrap(selected string, tag Tag) string {
	if tag == LineBreak {
		return selected + lineBreakToken
	}
	return "<" + string(tag) + ">" + selected + "</" + string(tag) + ">"
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
