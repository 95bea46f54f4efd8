package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMapBindings(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		msg     tea.KeyMsg
	}{
		{"quit q", km.Quit, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"quit ctrl+c", km.Quit, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"recompute r", km.Restart, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}},
		{"recompute enter", km.Restart, tea.KeyMsg{Type: tea.KeyEnter}},
		{"toggle value", km.ToggleValue, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !key.Matches(tc.msg, tc.binding) {
				t.Errorf("%s should match binding %v", tc.msg, tc.binding.Keys())
			}
		})
	}
}

func TestKeyMapHelpAdvertisesEnter(t *testing.T) {
	t.Parallel()
	help := DefaultKeyMap().Restart.Help()
	if !strings.Contains(help.Key, "enter") {
		t.Errorf("recompute help key = %q, want it to mention enter", help.Key)
	}
	if help.Desc != "recompute" {
		t.Errorf("recompute help desc = %q, want %q", help.Desc, "recompute")
	}
}

func TestKeyMapDoesNotMatchOtherKeys(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	if key.Matches(msg, km.Quit) || key.Matches(msg, km.Restart) || key.Matches(msg, km.ToggleValue) {
		t.Error("'x' should not match any binding")
	}
}
