package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft      = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight     = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
)

func allModes() []Mode {
	modes := []Mode{Navigation, Command}
	for _, k := range []Kind{Add, Rename, Delete} {
		modes = append(modes, Operation(k), Confirmation(k))
	}
	return modes
}

func TestResolveNavigation(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		hovering bool
		want     Action
	}{
		{"j", runeKey('j'), true, ActionNextItem},
		{"down", keyDown, true, ActionNextItem},
		{"k", runeKey('k'), true, ActionPreviousItem},
		{"up", keyUp, true, ActionPreviousItem},
		{"l", runeKey('l'), true, ActionEnterItem},
		{"enter", keyEnter, true, ActionEnterItem},
		{"right", keyRight, true, ActionEnterItem},
		{"h", runeKey('h'), true, ActionExitItem},
		{"backspace", keyBackspace, true, ActionExitItem},
		{"left", keyLeft, true, ActionExitItem},
		{"a", runeKey('a'), false, ActionAddFile},
		{"r hovering", runeKey('r'), true, ActionRenameFile},
		{"r without selection", runeKey('r'), false, ActionNone},
		{"d hovering", runeKey('d'), true, ActionDeleteFile},
		{"d without selection", runeKey('d'), false, ActionNone},
		{"x", runeKey('x'), false, ActionCloseMessage},
		{"q", runeKey('q'), false, ActionQuit},
		{"esc", keyEsc, false, ActionQuit},
		{"ctrl+c", keyCtrlC, false, ActionQuit},
		{"!", runeKey('!'), false, ActionCommandMode},
		{"o hovering", runeKey('o'), true, ActionOpen},
		{"o without selection", runeKey('o'), false, ActionNone},
		{"c hovering", runeKey('c'), true, ActionCopyPath},
		{"c without selection", runeKey('c'), false, ActionNone},
		{"unbound letter", runeKey('z'), true, ActionNone},
		{"tab", keyTab, true, ActionNone},
		{"y", runeKey('y'), true, ActionNone},
		{"n", runeKey('n'), true, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys.Resolve(Navigation, tt.msg, tt.hovering)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTextModes(t *testing.T) {
	keys := DefaultKeyMap()

	for _, mode := range []Mode{Operation(Add), Operation(Rename), Command} {
		t.Run(mode.String(), func(t *testing.T) {
			assert.Equal(t, ActionNavigationMode, keys.Resolve(mode, keyEsc, true))
			assert.Equal(t, ActionSubmit, keys.Resolve(mode, keyEnter, true))

			// Navigation and confirmation letters are plain text here
			for _, r := range "jkhlqadrxyn!" {
				assert.Equal(t, ActionInputChar, keys.Resolve(mode, runeKey(r), true), "rune %q", r)
			}
			assert.Equal(t, ActionInputChar, keys.Resolve(mode, keyBackspace, true))
			assert.Equal(t, ActionInputChar, keys.Resolve(mode, keyLeft, true))
		})
	}
}

func TestResolveConfirmation(t *testing.T) {
	keys := DefaultKeyMap()

	modes := []Mode{Confirmation(Add), Confirmation(Rename), Confirmation(Delete), Operation(Delete)}
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			assert.Equal(t, ActionSubmit, keys.Resolve(mode, keyEnter, true))
			assert.Equal(t, ActionSubmit, keys.Resolve(mode, runeKey('y'), true))
			assert.Equal(t, ActionNavigationMode, keys.Resolve(mode, keyEsc, true))
			assert.Equal(t, ActionNavigationMode, keys.Resolve(mode, runeKey('n'), true))

			for _, msg := range []tea.KeyMsg{runeKey('j'), runeKey('q'), runeKey('Y'), keyBackspace, keyUp, keyTab} {
				assert.Equal(t, ActionNone, keys.Resolve(mode, msg, true), "key %s", msg)
			}
		})
	}
}

// Every (mode, key) pair resolves to a defined action without panicking.
func TestResolveIsTotal(t *testing.T) {
	keys := DefaultKeyMap()

	msgs := []tea.KeyMsg{keyEnter, keyEsc, keyBackspace, keyUp, keyDown, keyLeft, keyRight, keyCtrlC, keyTab,
		{Type: tea.KeySpace, Runes: []rune{' '}}, {Type: tea.KeyDelete}, {Type: tea.KeyF5}}
	for r := rune(32); r < 127; r++ {
		msgs = append(msgs, runeKey(r))
	}

	for _, mode := range allModes() {
		for _, msg := range msgs {
			for _, hovering := range []bool{true, false} {
				assert.NotPanics(t, func() {
					got := keys.Resolve(mode, msg, hovering)
					assert.GreaterOrEqual(t, int(got), int(ActionNone))
					assert.LessOrEqual(t, int(got), int(ActionQuit))
				})
			}
		}
	}
}

func TestStateEnter(t *testing.T) {
	s := NewState()
	assert.Equal(t, Navigation, s.Mode)
	assert.Empty(t, s.Value())

	s.Enter(Operation(Add))
	assert.True(t, s.Buffer.Focused())
	for _, r := range "new.txt" {
		s.Type(runeKey(r))
	}
	assert.Equal(t, "new.txt", s.Value())

	// The buffer survives into confirmation so the operation can use it
	s.Enter(Confirmation(Add))
	assert.Equal(t, "new.txt", s.Value())

	s.Enter(Navigation)
	assert.Empty(t, s.Value())
	assert.False(t, s.Buffer.Focused())

	// Entering a text mode always starts from an empty buffer
	s.Buffer.SetValue("stale")
	s.Enter(Operation(Rename))
	assert.Empty(t, s.Value())
}

func TestStateTypeEditsBuffer(t *testing.T) {
	s := NewState()
	s.Enter(Command)

	for _, r := range "abc" {
		s.Type(runeKey(r))
	}
	s.Type(keyBackspace)
	assert.Equal(t, "ab", s.Value())
}

func TestModeCollects(t *testing.T) {
	assert.True(t, Command.Collects())
	assert.True(t, Operation(Add).Collects())
	assert.True(t, Operation(Rename).Collects())
	assert.False(t, Operation(Delete).Collects())
	assert.False(t, Confirmation(Add).Collects())
	assert.False(t, Navigation.Collects())
}

func TestForwardOnlyInTextModes(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.Forward(runeKey('x')))
	assert.Empty(t, s.Value())

	s.Enter(Command)
	s.Forward(runeKey('x'))
	assert.Equal(t, "x", s.Value())

	s.Enter(Confirmation(Add))
	s.Forward(runeKey('y'))
	assert.Equal(t, "x", s.Value())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "navigation", Navigation.String())
	assert.Equal(t, "command", Command.String())
	assert.Equal(t, "operation(rename)", Operation(Rename).String())
	assert.Equal(t, "confirmation(delete)", Confirmation(Delete).String())
}
