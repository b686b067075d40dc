package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/recipedia/internal/tui/boundary"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/browser"
)

func TestBrowserModelIsWrappedInGlobalBoundary(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	app, _ := newTestApp(t, fixtures())
	require.NoError(t, app.Setup(context.Background(), &rootFlags{}, false))

	m := newBrowserModel(context.Background(), app, app.Logger)

	assert.False(t, m.Failed())
	child, ok := m.Child().(browser.Model)
	require.True(t, ok)
	assert.Equal(t, browser.ScreenHome, child.Screen())
	assert.Contains(t, m.View(), "Recipedia")
	assert.NotNil(t, m.Init())
}

func TestBrowserThemeTogglePersists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	app, _ := newTestApp(t, fixtures())
	require.NoError(t, app.Setup(context.Background(), &rootFlags{}, false))

	m := newBrowserModel(context.Background(), app, app.Logger)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	require.NotNil(t, cmd)

	m = next.(boundary.Model)
	next, _ = m.Update(cmd())
	m = next.(boundary.Model)

	assert.False(t, m.Failed())
	assert.Equal(t, "light", string(app.Themes.Mode()))
}
