package richtext

import (
	"errors"

	"mycv/internal/resume"
)

// ErrTargetNotFound is returned when the formatted field does not exist.
var ErrTargetNotFound = errors.New("richtext: target field not found")

// Target names the focused field: a text section's content when ItemID
// is empty, otherwise the description of that item.
type Target struct {
	SectionID string `json:"section_id"`
	ItemID    string `json:"item_id,omitempty"`
}

// Selection holds character offsets inside the target field.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Apply formats the target field and returns the edited copy of doc.
func Apply(doc resume.Document, target Target, sel Selection, tag Tag) (resume.Document, error) {
	section, ok := doc.Section(target.SectionID)
	if !ok {
		return doc, ErrTargetNotFound
	}

	if target.ItemID == "" {
		formatted := ApplyInlineMarkup(section.Content, sel.Start, sel.End, tag)
		return doc.SetSectionContent(section.ID, formatted), nil
	}

	for _, item := range section.Items {
		if item.ID != target.ItemID {
			continue
		}
		formatted := ApplyInlineMarkup(item.Description, sel.Start, sel.End, tag)
		return doc.UpdateItem(section.ID, item.ID, func(it *resume.SectionItem) {
			it.Description = formatted
		}), nil
	}
	return doc, ErrTargetNotFound
}
