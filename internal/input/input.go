// Package input classifies key presses according to the active input
// mode. Navigation keys drive the cursor, Operation and Command modes
// collect text, and Confirmation mode waits for a yes or no.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind is the file operation an Operation or Confirmation mode refers to
type Kind int

const (
	Add Kind = iota
	Rename
	Delete
)

func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Rename:
		return "rename"
	case Delete:
		return "delete"
	}
	return "unknown"
}

// Phase is the variant of Mode; Kind is only meaningful for
// PhaseOperation and PhaseConfirmation.
type Phase int

const (
	PhaseNavigation Phase = iota
	PhaseCommand
	PhaseOperation
	PhaseConfirmation
)

type Mode struct {
	Phase Phase
	Kind  Kind
}

var Navigation = Mode{Phase: PhaseNavigation}

var Command = Mode{Phase: PhaseCommand}

func Operation(k Kind) Mode { return Mode{Phase: PhaseOperation, Kind: k} }

func Confirmation(k Kind) Mode { return Mode{Phase: PhaseConfirmation, Kind: k} }

func (m Mode) String() string {
	switch m.Phase {
	case PhaseNavigation:
		return "navigation"
	case PhaseCommand:
		return "command"
	case PhaseOperation:
		return "operation(" + m.Kind.String() + ")"
	case PhaseConfirmation:
		return "confirmation(" + m.Kind.String() + ")"
	}
	return "unknown"
}

// Action is what a key press asks the application to do
type Action int

const (
	ActionNone Action = iota

	// Navigation
	ActionNextItem
	ActionPreviousItem
	ActionEnterItem
	ActionExitItem

	// Operations
	ActionAddFile
	ActionRenameFile
	ActionDeleteFile

	// Mode switching
	ActionNavigationMode
	ActionCommandMode

	ActionSubmit // Enter in Operation/Command, yes in Confirmation
	ActionInputChar
	ActionCloseMessage
	ActionOpen
	ActionCopyPath
	ActionQuit
)

// KeyMap defines key bindings for each user action
type KeyMap struct {
	Down       key.Binding
	Up         key.Binding
	Enter      key.Binding
	Back       key.Binding
	Add        key.Binding
	Rename     key.Binding
	Delete     key.Binding
	Command    key.Binding
	CloseError key.Binding
	Open       key.Binding
	CopyPath   key.Binding
	Quit       key.Binding
	Cancel     key.Binding
	Submit     key.Binding
	ConfirmYes key.Binding
	ConfirmNo  key.Binding
}

// DefaultKeyMap returns the bindings of the navigation and prompt modes
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Enter: key.NewBinding(
			key.WithKeys("l", "enter", "right"),
			key.WithHelp("→/l", "enter dir"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "backspace", "left"),
			key.WithHelp("←/h", "parent"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Command: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "jump"),
		),
		CloseError: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close error"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy path"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		ConfirmYes: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("y", "confirm"),
		),
		ConfirmNo: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// ShortHelp lists the navigation bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Back, k.Add, k.Rename, k.Delete, k.Command, k.Quit}
}

// FullHelp groups every binding for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Enter, k.Back},
		{k.Add, k.Rename, k.Delete, k.Command},
		{k.Open, k.CopyPath, k.CloseError, k.Quit},
	}
}

// Resolve maps a key press in mode to an action. hovering reports
// whether the listing has a selection; rename, delete, open and copy
// are ignored without one. Every unlisted key resolves to ActionNone.
func (k KeyMap) Resolve(mode Mode, msg tea.KeyMsg, hovering bool) Action {
	switch mode.Phase {
	case PhaseNavigation:
		switch {
		case key.Matches(msg, k.Down):
			return ActionNextItem
		case key.Matches(msg, k.Up):
			return ActionPreviousItem
		case key.Matches(msg, k.Enter):
			return ActionEnterItem
		case key.Matches(msg, k.Back):
			return ActionExitItem
		case key.Matches(msg, k.Command):
			return ActionCommandMode
		case key.Matches(msg, k.Add):
			return ActionAddFile
		case key.Matches(msg, k.Rename):
			if hovering {
				return ActionRenameFile
			}
		case key.Matches(msg, k.Delete):
			if hovering {
				return ActionDeleteFile
			}
		case key.Matches(msg, k.Open):
			if hovering {
				return ActionOpen
			}
		case key.Matches(msg, k.CopyPath):
			if hovering {
				return ActionCopyPath
			}
		case key.Matches(msg, k.CloseError):
			return ActionCloseMessage
		case key.Matches(msg, k.Quit):
			return ActionQuit
		}
		return ActionNone

	case PhaseCommand:
		return k.resolveText(msg)

	case PhaseOperation:
		if mode.Kind == Delete {
			return k.resolveConfirm(msg)
		}
		return k.resolveText(msg)

	case PhaseConfirmation:
		return k.resolveConfirm(msg)
	}
	return ActionNone
}

func (k KeyMap) resolveText(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Cancel):
		return ActionNavigationMode
	case key.Matches(msg, k.Submit):
		return ActionSubmit
	}
	return ActionInputChar
}

func (k KeyMap) resolveConfirm(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.ConfirmNo):
		return ActionNavigationMode
	case key.Matches(msg, k.ConfirmYes):
		return ActionSubmit
	}
	return ActionNone
}

// State is the input side of the application: the active mode, the text
// being typed and the last operation error.
type State struct {
	Mode      Mode
	Buffer    textinput.Model
	LastError string
	Keys      KeyMap
}

// NewState starts in Navigation with an empty buffer
func NewState() State {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Prompt = ""

	return State{
		Mode:   Navigation,
		Buffer: ti,
		Keys:   DefaultKeyMap(),
	}
}

// Enter switches to mode. Navigation blurs and clears the buffer; the
// text modes start from an empty, focused buffer.
func (s *State) Enter(mode Mode) tea.Cmd {
	s.Mode = mode
	switch mode.Phase {
	case PhaseNavigation:
		s.Buffer.Reset()
		s.Buffer.Blur()
	case PhaseCommand, PhaseOperation:
		if mode == Operation(Delete) {
			return nil
		}
		s.Buffer.Reset()
		return s.Buffer.Focus()
	}
	return nil
}

// Type forwards a key press to the buffer
func (s *State) Type(msg tea.KeyMsg) tea.Cmd {
	return s.Forward(msg)
}

// Forward hands any other message, such as cursor blinks, to the buffer
// while a text mode is active.
func (s *State) Forward(msg tea.Msg) tea.Cmd {
	if !s.Mode.Collects() {
		return nil
	}
	var cmd tea.Cmd
	s.Buffer, cmd = s.Buffer.Update(msg)
	return cmd
}

// Collects reports whether the mode reads text into the buffer
func (m Mode) Collects() bool {
	switch m.Phase {
	case PhaseCommand:
		return true
	case PhaseOperation:
		return m.Kind != Delete
	}
	return false
}

// Value returns the text typed so far
func (s *State) Value() string {
	return s.Buffer.Value()
}
