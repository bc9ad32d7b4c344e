// Package apptheme forces the planner's dark or light look
// independent of the desktop preference.
package apptheme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"studyplanner/internal/ui/preferences"
)

type forcedVariant struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// ForName returns a theme locked to the named variant. Unknown names
// fall back to dark.
func ForName(name string) fyne.Theme {
	variant := theme.VariantDark
	if name == preferences.ThemeLight {
		variant = theme.VariantLight
	}
	return &forcedVariant{base: theme.DefaultTheme(), variant: variant}
}

func (forced *forcedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return forced.base.Color(name, forced.variant)
}

func (forced *forcedVariant) Icon(name fyne.ThemeIconName) fyne.Resource {
	return forced.base.Icon(name)
}

func (forced *forcedVariant) Font(style fyne.TextStyle) fyne.Resource {
	return forced.base.Font(style)
}

func (forced *forcedVariant) Size(name fyne.ThemeSizeName) float32 {
	return forced.base.Size(name)
}
