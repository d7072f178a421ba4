package main

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"
)

// openFile hands the entry to the system default application
func (m *model) openFile(path string) tea.Cmd {
	return func() tea.Msg {
		if err := open.Start(path); err != nil {
			return fileOpenResultMsg{
				success: false,
				message: fmt.Sprintf("Failed to open %s: %v", filepath.Base(path), err),
				path:    path,
			}
		}
		return fileOpenResultMsg{
			success: true,
			message: fmt.Sprintf("Opened %s", filepath.Base(path)),
			path:    path,
		}
	}
}

func (m *model) copyPath(path string) {
	// Use clipboard library for cross-platform support
	if err := clipboard.WriteAll(path); err != nil {
		m.setStatus(fmt.Sprintf("Failed to copy: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Copied: %s", path))
}
