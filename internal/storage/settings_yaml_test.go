package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyplanner/internal/ui/preferences"
)

func TestApplyYamlSettings(t *testing.T) {
	enabled := false
	settings := preferences.DefaultSettings()
	applyYamlSettings(&settings, yamlSettings{
		WorkMinutes:   50,
		BreakMinutes:  10,
		Theme:         preferences.ThemeLight,
		Notifications: &enabled,
	})

	assert.Equal(t, 50, settings.WorkMinutes)
	assert.Equal(t, 10, settings.BreakMinutes)
	assert.Equal(t, preferences.ThemeLight, settings.Theme)
	assert.False(t, settings.Notifications)
}

func TestApplyYamlSettingsKeepsDefaultsForBadValues(t *testing.T) {
	settings := preferences.DefaultSettings()
	applyYamlSettings(&settings, yamlSettings{
		WorkMinutes:  -3,
		BreakMinutes: 0,
		Theme:        "solarized",
	})

	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults, settings)
}
