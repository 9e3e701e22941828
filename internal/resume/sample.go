package resume

// SampleTitle 是新建简历的默认标题。
const SampleTitle = "Untitled Resume"

// Sample 返回新建简历时使用的示例文档，每次调用都是独立副本。
func Sample() Document {
	visible := func() *bool { v := true; return &v }
	return Document{
		Basics: &Basics{
			FullName: "Alex Morgan",
			Email:    "alex@example.com",
			Phone:    "+1 (555) 019-2834",
			Location: "San Francisco, CA",
			Website:  "linkedin.com/in/alexmorgan",
			JobTitle: "Senior Product Manager",
		},
		Sections: []Section{
			{
				ID: "summary", Title: "Professional Summary", Type: TypeText, IsVisible: visible(), Column: ColumnFull,
				Items:   []SectionItem{},
				Content: "Results-oriented Senior Product Manager with 7+ years of experience leading cross-functional teams to build scalable SaaS products. Proven track record of increasing user engagement by 40% through data-driven feature prioritization.",
			},
			{
				ID: "experience", Title: "Work Experience", Type: TypeList, IsVisible: visible(), Column: ColumnFull,
				Items: []SectionItem{
					{ID: "j1", Title: "TechFlow Inc.", Subtitle: "Senior Product Manager", Date: "2021 - Present", Description: "• Led the launch of the 'Flow' analytics dashboard, increasing ARR by 15%.<br/>• Managed a team of 12 engineers and designers.<br/>• Conducted 50+ user interviews to identify pain points."},
					{ID: "j2", Title: "StartUp IO", Subtitle: "Product Manager", Date: "2018 - 2021", Description: "• Spearheaded the mobile app redesign, resulting in a 4.8-star rating.<br/>• Implemented Agile methodologies, reducing sprint cycle time by 20%."},
				},
			},
			{
				ID: "education", Title: "Education", Type: TypeList, IsVisible: visible(), Column: ColumnLeft,
				Items: []SectionItem{
					{ID: "e1", Title: "Stanford University", Subtitle: "MBA", Date: "2018"},
					{ID: "e2", Title: "UC Berkeley", Subtitle: "BS Computer Science", Date: "2014"},
				},
			},
			{
				ID: "skills", Title: "Skills", Type: TypeSkills, IsVisible: visible(), Column: ColumnLeft,
				Items: []SectionItem{
					{ID: "s1", Tags: []string{"Product Strategy", "Agile", "Jira", "SQL", "Figma", "User Research", "A/B Testing"}},
				},
			},
			{
				ID: "certs", Title: "Certifications", Type: TypeList, IsVisible: visible(), Column: ColumnLeft,
				Items: []SectionItem{
					{ID: "c1", Title: "PMP Certification", Date: "2020", Subtitle: "Project Management Institute"},
				},
			},
		},
	}
}
