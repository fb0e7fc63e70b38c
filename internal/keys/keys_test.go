package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Viewer Keybinding Tests
// ============================================================================

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{
			name:     "Up uses k and up arrow",
			binding:  km.Up,
			expected: []string{"k", "up"},
		},
		{
			name:     "Down uses j and down arrow",
			binding:  km.Down,
			expected: []string{"j", "down"},
		},
		{
			name:     "HalfUp uses ctrl+u",
			binding:  km.HalfUp,
			expected: []string{"ctrl+u"},
		},
		{
			name:     "HalfDown uses ctrl+d",
			binding:  km.HalfDown,
			expected: []string{"ctrl+d"},
		},
		{
			name:     "Top uses g and home",
			binding:  km.Top,
			expected: []string{"g", "home"},
		},
		{
			name:     "Bottom uses G and end",
			binding:  km.Bottom,
			expected: []string{"G", "end"},
		},
		{
			name:     "Jump uses colon",
			binding:  km.Jump,
			expected: []string{":"},
		},
		{
			name:     "Quit uses q and ctrl+c",
			binding:  km.Quit,
			expected: []string{"q", "ctrl+c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", km.Up},
		{"Down", km.Down},
		{"HalfUp", km.HalfUp},
		{"HalfDown", km.HalfDown},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
		{"Top", km.Top},
		{"Bottom", km.Bottom},
		{"Jump", km.Jump},
		{"Refresh", km.Refresh},
		{"Yank", km.Yank},
		{"ToggleScrollbar", km.ToggleScrollbar},
		{"ToggleLogs", km.ToggleLogs},
		{"Help", km.Help},
		{"Escape", km.Escape},
		{"Quit", km.Quit},
		{"ToggleStatus", km.ToggleStatus},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			help := b.binding.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		})
	}
}

func TestDefaultKeyMap_ToggleLogsNotCtrlD(t *testing.T) {
	// Explicit test: ctrl+g is used for the log overlay, NOT ctrl+d
	// (which conflicts with half page down)
	km := DefaultKeyMap()
	keys := km.ToggleLogs.Keys()
	require.Contains(t, keys, "ctrl+g", "ToggleLogs must use ctrl+g")
	require.NotContains(t, keys, "ctrl+d", "ToggleLogs must NOT use ctrl+d (conflicts with HalfDown)")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.ShortHelp()
	require.NotEmpty(t, help, "short help should not be empty")
	require.Len(t, help, 2, "short help should contain 2 bindings")
	require.Equal(t, km.Help, help[0])
	require.Equal(t, km.Quit, help[1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.FullHelp()
	require.NotEmpty(t, help, "full help should not be empty")
	require.Len(t, help, 4, "full help should contain 4 rows")

	// First row: navigation
	require.Contains(t, help[0], km.Up)
	require.Contains(t, help[0], km.Down)
	require.Contains(t, help[0], km.HalfUp)
	require.Contains(t, help[0], km.HalfDown)

	// Second row: jumps
	require.Contains(t, help[1], km.Top)
	require.Contains(t, help[1], km.Bottom)
	require.Contains(t, help[1], km.Jump)

	// Last row: general
	require.Contains(t, help[3], km.Quit)
}

// ============================================================================
// Jump Prompt Keybinding Tests
// ============================================================================

func TestDefaultJumpKeyMap(t *testing.T) {
	km := DefaultJumpKeyMap()

	require.Equal(t, []string{"enter"}, km.Execute.Keys(), "Execute should be bound to enter")
	require.Equal(t, []string{"esc"}, km.Cancel.Keys(), "Cancel should be bound to esc")

	require.NotEmpty(t, km.Execute.Help().Desc, "Execute should have help text")
	require.NotEmpty(t, km.Cancel.Help().Desc, "Cancel should have help text")
}
