// Package layout splits a resume into pages and routes each page's
// sections into placement groups. Both steps are order-preserving
// partitions: nothing is reordered, duplicated or dropped.
package layout

import "mycv/internal/resume"

// SplitIntoPages partitions sections at break markers.
//
// A break closes the current page even when it is empty, so consecutive
// breaks yield blank pages. The trailing buffer becomes a page only when it
// holds sections or when no page exists yet: no sections gives one empty
// page, and a trailing break does not add an extra page.
func SplitIntoPages(sections []resume.Section) [][]resume.Section {
	pages := make([][]resume.Section, 0, 1)
	current := []resume.Section{}
	for _, s := range sections {
		if s.IsBreak() {
			pages = append(pages, current)
			current = []resume.Section{}
			continue
		}
		current = append(current, s)
	}
	if len(current) > 0 || len(pages) == 0 {
		pages = append(pages, current)
	}
	return pages
}

// Columns is the routed form of one page.
type Columns struct {
	Left  []resume.Section
	Right []resume.Section
}

// RouteColumns splits a page into sections placed in the left column and
// everything else. Right, full, empty and unknown column values all land
// in Right.
func RouteColumns(page []resume.Section) Columns {
	cols := Columns{
		Left:  []resume.Section{},
		Right: []resume.Section{},
	}
	for _, s := range page {
		if s.InLeftColumn() {
			cols.Left = append(cols.Left, s)
		} else {
			cols.Right = append(cols.Right, s)
		}
	}
	return cols
}
