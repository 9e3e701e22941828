package theme

// FontOption 是设计面板中的字体选项。
type FontOption struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Family string `json:"family"`
}

// SizeOption 是设计面板中的字号档位。
type SizeOption struct {
	ID    FontSize `json:"id"`
	Label string   `json:"label"`
}

// Fonts 返回设计面板可选字体。
func Fonts() []FontOption {
	return []FontOption{
		{ID: "Roboto", Label: "Roboto", Family: "'Roboto', sans-serif"},
		{ID: "Open Sans", Label: "Open Sans", Family: "'Open Sans', sans-serif"},
		{ID: "Lato", Label: "Lato", Family: "'Lato', sans-serif"},
		{ID: "Montserrat", Label: "Montserrat", Family: "'Montserrat', sans-serif"},
		{ID: "Oswald", Label: "Oswald", Family: "'Oswald', sans-serif"},
		{ID: "Raleway", Label: "Raleway", Family: "'Raleway', sans-serif"},
		{ID: "Merriweather", Label: "Merriweather", Family: "'Merriweather', serif"},
		{ID: "Playfair Display", Label: "Playfair", Family: "'Playfair Display', serif"},
		{ID: "Arial", Label: "Arial", Family: "Arial, Helvetica, sans-serif"},
		{ID: "Georgia", Label: "Georgia", Family: "Georgia, serif"},
		{ID: "Courier New", Label: "Courier", Family: "'Courier New', monospace"},
		{ID: "Times New Roman", Label: "Times", Family: "'Times New Roman', serif"},
	}
}

// Colors 返回设计面板预置的强调色。
func Colors() []string {
	return []string{"#0f172a", "#3b82f6", "#0ea5e9", "#10b981", "#8b5cf6", "#f43f5e", "#d97706", "#000000"}
}

// Sizes 返回三个字号档位。
func Sizes() []SizeOption {
	return []SizeOption{
		{ID: Small, Label: "Compact"},
		{ID: Medium, Label: "Standard"},
		{ID: Large, Label: "Large"},
	}
}
