package main

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/gravily/internal/fileops"
	"github.com/LFroesch/gravily/internal/input"
	"github.com/LFroesch/gravily/internal/logger"
	"github.com/LFroesch/gravily/internal/search"
)

func (m *model) Init() tea.Cmd {
	return tea.SetWindowTitle("Gravily File Manager")
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Clear expired status messages
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Skip if dimensions haven't actually changed
		if msg.Width == m.width && msg.Height == m.height {
			return m, nil
		}
		m.width = max(msg.Width, minTerminalWidth)
		m.height = max(msg.Height, minTerminalHeight)
		m.help.Width = m.width

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case fileOpenResultMsg:
		if !msg.success {
			logger.Warn("Failed to open %s: %s", msg.path, msg.message)
		}
		m.setStatus(msg.message)

	default:
		cmd = m.input.Forward(msg)
	}

	m.ensureVisible()
	m.updatePreview()
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	hovered, hovering := m.nav.Hovered()
	action := m.input.Keys.Resolve(m.input.Mode, msg, hovering)

	switch action {
	case input.ActionNextItem:
		m.nav.SelectNext()
	case input.ActionPreviousItem:
		m.nav.SelectPrevious()
	case input.ActionEnterItem:
		m.navigate(m.nav.EnterHovered)
	case input.ActionExitItem:
		m.navigate(m.nav.ExitCurrent)

	case input.ActionAddFile:
		return m.input.Enter(input.Operation(input.Add))
	case input.ActionRenameFile:
		return m.input.Enter(input.Operation(input.Rename))
	case input.ActionDeleteFile:
		return m.input.Enter(input.Confirmation(input.Delete))
	case input.ActionCommandMode:
		return m.input.Enter(input.Command)
	case input.ActionNavigationMode:
		m.input.Enter(input.Navigation)

	case input.ActionInputChar:
		return m.input.Type(msg)
	case input.ActionSubmit:
		return m.submit()

	case input.ActionCloseMessage:
		m.input.LastError = ""
	case input.ActionOpen:
		return m.openFile(hovered)
	case input.ActionCopyPath:
		m.copyPath(hovered)
	case input.ActionQuit:
		logger.Info("Quit from %s", m.nav.Path)
		return tea.Quit
	}
	return nil
}

// navigate runs a descend or ascend and reports its failure through the
// error box. Git decoration follows the directory.
func (m *model) navigate(move func() error) {
	before := m.nav.Path
	if err := move(); err != nil {
		m.input.LastError = err.Error()
		logger.Warn("%v", err)
	}
	if m.nav.Path != before {
		m.loadGit()
	}
}

func (m *model) submit() tea.Cmd {
	mode := m.input.Mode
	switch mode.Phase {
	case input.PhaseCommand:
		m.jump(m.input.Value())
		m.input.Enter(input.Navigation)

	case input.PhaseOperation:
		if mode.Kind != input.Delete {
			return m.input.Enter(input.Confirmation(mode.Kind))
		}
		m.execute(mode.Kind)
		m.input.Enter(input.Navigation)

	case input.PhaseConfirmation:
		m.execute(mode.Kind)
		m.input.Enter(input.Navigation)
	}
	return nil
}

func (m *model) jump(query string) {
	if query == "" {
		return
	}
	match, ok := search.BestMatch(query, m.nav.Entries)
	if !ok {
		m.setStatus(fmt.Sprintf("No entry matches %q", query))
		return
	}
	m.nav.JumpTo(match.Index)
}

// execute performs a confirmed file operation. The previous error is
// cleared first and the listing is re-read whether or not it succeeded.
func (m *model) execute(kind input.Kind) {
	m.input.LastError = ""

	var (
		err       error
		target    string
		operation string
	)
	switch kind {
	case input.Add:
		operation = "making"
		target = filepath.Join(m.nav.Path, m.input.Value())
		err = fileops.CreateFile(m.nav.Path, m.input.Value())

	case input.Rename:
		operation = "renaming"
		hovered, ok := m.nav.Hovered()
		if !ok {
			return
		}
		target = hovered
		err = fileops.Rename(m.nav.Path, hovered, m.input.Value())

	case input.Delete:
		operation = "deleting"
		hovered, ok := m.nav.Hovered()
		if !ok {
			return
		}
		target = hovered
		err = fileops.Delete(hovered, m.cfg.UseTrash)
	}

	if err != nil {
		err = fileops.FormatError(err, target, operation)
		m.input.LastError = err.Error()
		logger.Warn("%v", err)
	} else {
		logger.Info("%s %s", operation, target)
	}

	m.refresh()
}

func (m *model) refresh() {
	if err := m.nav.Refresh(); err != nil {
		logger.Warn("%v", err)
		if m.input.LastError == "" {
			m.input.LastError = err.Error()
		}
	}
	m.loadGit()
}
