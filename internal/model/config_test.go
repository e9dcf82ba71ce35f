package model_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/model"
)

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := model.LoadSettings(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Theme)
	assert.False(t, cfg.ShowAIChat)
	assert.Equal(t, model.DefaultQuickDurations, cfg.QuickDurations)
	assert.NotNil(t, cfg.Colors)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &model.Settings{
		Theme:  "dark",
		Colors: map[string]string{"accent": "#ff00ff"},
		Jira: model.JiraSettings{
			BaseURL: "https://team.atlassian.net",
			Email:   "me@example.com",
		},
		AI:             model.AISettings{Model: "gpt-4o-mini"},
		ShowAIChat:     true,
		QuickDurations: []float64{1, 2},
	}
	require.NoError(t, model.SaveSettings(path, cfg))

	loaded, err := model.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadSettingsFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, model.SaveSettings(path, &model.Settings{Theme: "light"}))

	loaded, err := model.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.Theme)
	assert.Equal(t, model.DefaultQuickDurations, loaded.QuickDurations)
}
