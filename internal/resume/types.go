package resume

// Document 表示一份简历的结构化数据，即编辑器保存的 content JSON。
// Basics 或 Sections 为 nil 表示文档尚未加载完成。
type Document struct {
	Basics   *Basics   `json:"basics" yaml:"basics"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Basics 是身份信息，字段除存在性外不做校验。
type Basics struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
	JobTitle string `json:"jobTitle,omitempty" yaml:"jobTitle,omitempty"`
	// Image 为头像，可以是 URL 或 data URI。
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// SectionType 决定分区内容的渲染方式。
type SectionType string

const (
	TypeText   SectionType = "text"
	TypeList   SectionType = "list"
	TypeSkills SectionType = "skills"
	// TypeBreak 只用于结束当前页，没有可见内容。
	TypeBreak SectionType = "break"
)

// Column 描述分区在模板中的放置位置。
type Column string

const (
	ColumnLeft  Column = "left"
	ColumnRight Column = "right"
	ColumnFull  Column = "full"
)

// Section 是一个有序的内容分区。
type Section struct {
	ID    string      `json:"id" yaml:"id"`
	Title string      `json:"title" yaml:"title"`
	Type  SectionType `json:"type" yaml:"type"`
	// IsVisible 缺省视为可见；保持指针以便缺省值原样往返。
	IsVisible *bool         `json:"isVisible,omitempty" yaml:"isVisible,omitempty"`
	Column    Column        `json:"column,omitempty" yaml:"column,omitempty"`
	Content   string        `json:"content,omitempty" yaml:"content,omitempty"`
	Items     []SectionItem `json:"items" yaml:"items"`
}

// SectionItem 是 list/skills 分区中的单个条目。
type SectionItem struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Visible reports whether the section takes part in rendering.
func (s Section) Visible() bool {
	return s.IsVisible == nil || *s.IsVisible
}

// IsBreak reports whether the section is a page delimiter.
func (s Section) IsBreak() bool {
	return s.Type == TypeBreak
}

// InLeftColumn reports whether the section routes to the left group.
// Every other column value, known or not, routes to the main group.
func (s Section) InLeftColumn() bool {
	return s.Column == ColumnLeft
}

// Loaded reports whether both basics and sections are present.
func (d Document) Loaded() bool {
	return d.Basics != nil && d.Sections != nil
}

// Clone returns a deep copy so that edits never alias the source document.
func (d Document) Clone() Document {
	out := Document{}
	if d.Basics != nil {
		b := *d.Basics
		out.Basics = &b
	}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			out.Sections[i] = s.clone()
		}
	}
	return out
}

func (s Section) clone() Section {
	out := s
	if s.IsVisible != nil {
		v := *s.IsVisible
		out.IsVisible = &v
	}
	if s.Items != nil {
		out.Items = make([]SectionItem, len(s.Items))
		for i, item := range s.Items {
			out.Items[i] = item
			if item.Tags != nil {
				out.Items[i].Tags = append([]string(nil), item.Tags...)
			}
		}
	}
	return out
}
