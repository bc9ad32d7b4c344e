package preferences

// Theme names accepted by the settings file and the theme toggle.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes   int
	BreakMinutes  int
	Theme         string
	Notifications bool
}

// DefaultSettings returns default settings for StudyPlanner.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:   25,
		BreakMinutes:  5,
		Theme:         ThemeDark,
		Notifications: true,
	}
}

// ValidTheme reports whether the value is a known theme name.
func ValidTheme(theme string) bool {
	return theme == ThemeDark || theme == ThemeLight
}
