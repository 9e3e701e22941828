package resume

import (
	"github.com/google/uuid"
)

// 编辑操作全部是写时复制：返回新的 Document，接收者保持不变。
// 找不到目标 id 时直接返回副本，不视为错误。

// Direction 是分区移动方向。
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

const (
	defaultSectionTitle = "New Section"
	pageBreakTitle      = "Page Break"
)

// NewID 生成分区与条目使用的不透明 id。
func NewID() string {
	return uuid.NewString()
}

// AddSection 追加一个空分区，默认可见且占满整行。
func (d Document) AddSection(title string, typ SectionType) (Document, Section) {
	if title == "" {
		title = defaultSectionTitle
	}
	visible := true
	section := Section{
		ID:        NewID(),
		Title:     title,
		Type:      typ,
		IsVisible: &visible,
		Column:    ColumnFull,
		Items:     []SectionItem{},
	}
	out := d.Clone()
	out.Sections = append(out.Sections, section)
	return out, section.clone()
}

// AddPageBreak 在末尾追加分页标记。
func (d Document) AddPageBreak() Document {
	visible := true
	out := d.Clone()
	out.Sections = append(out.Sections, Section{
		ID:        NewID(),
		Title:     pageBreakTitle,
		Type:      TypeBreak,
		IsVisible: &visible,
		Column:    ColumnFull,
		Items:     []SectionItem{},
	})
	return out
}

// MoveSection 与相邻分区交换位置，越界移动不生效。
func (d Document) MoveSection(index int, dir Direction) Document {
	out := d.Clone()
	switch {
	case dir == Up && index > 0 && index < len(out.Sections):
		out.Sections[index], out.Sections[index-1] = out.Sections[index-1], out.Sections[index]
	case dir == Down && index >= 0 && index < len(out.Sections)-1:
		out.Sections[index], out.Sections[index+1] = out.Sections[index+1], out.Sections[index]
	}
	return out
}

// DeleteSection 删除指定分区。
func (d Document) DeleteSection(id string) Document {
	out := d.Clone()
	if out.Sections == nil {
		return out
	}
	kept := make([]Section, 0, len(out.Sections))
	for _, s := range out.Sections {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	out.Sections = kept
	return out
}

// SetSectionVisible 切换分区可见性，分区仍保留在文档中。
func (d Document) SetSectionVisible(id string, visible bool) Document {
	return d.updateSection(id, func(s *Section) {
		v := visible
		s.IsVisible = &v
	})
}

// SetSectionColumn 修改分区所在列。
func (d Document) SetSectionColumn(id string, column Column) Document {
	return d.updateSection(id, func(s *Section) { s.Column = column })
}

// SetSectionTitle 修改分区标题，空标题合法。
func (d Document) SetSectionTitle(id, title string) Document {
	return d.updateSection(id, func(s *Section) { s.Title = title })
}

// SetSectionContent 替换 text 分区的富文本内容。
func (d Document) SetSectionContent(id, content string) Document {
	return d.updateSection(id, func(s *Section) { s.Content = content })
}

// AddItem 在分区末尾追加一个默认条目，skills 分区带一个占位标签。
func (d Document) AddItem(sectionID string) (Document, SectionItem) {
	var added SectionItem
	out := d.updateSection(sectionID, func(s *Section) {
		added = SectionItem{
			ID:       NewID(),
			Title:    "New Item",
			Date:     "2024",
			Subtitle: "Subtitle",
		}
		if s.Type == TypeSkills {
			added.Tags = []string{"Skill 1"}
		}
		s.Items = append(s.Items, added)
	})
	return out, added
}

// UpdateItem 对指定条目应用修改函数。
func (d Document) UpdateItem(sectionID, itemID string, fn func(*SectionItem)) Document {
	return d.updateSection(sectionID, func(s *Section) {
		for i := range s.Items {
			if s.Items[i].ID == itemID {
				fn(&s.Items[i])
			}
		}
	})
}

// RemoveItem 删除指定条目。
func (d Document) RemoveItem(sectionID, itemID string) Document {
	return d.updateSection(sectionID, func(s *Section) {
		kept := make([]SectionItem, 0, len(s.Items))
		for _, item := range s.Items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		s.Items = kept
	})
}

// SetBasics 整体替换身份信息。
func (d Document) SetBasics(b Basics) Document {
	out := d.Clone()
	out.Basics = &b
	return out
}

// Section 按 id 查找分区。
func (d Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return Section{}, false
}

func (d Document) updateSection(id string, fn func(*Section)) Document {
	out := d.Clone()
	for i := range out.Sections {
		if out.Sections[i].ID == id {
			fn(&out.Sections[i])
		}
	}
	return out
}
