package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/LFroesch/gravily/internal/input"
	"github.com/LFroesch/gravily/internal/preview"
	"github.com/LFroesch/gravily/internal/search"
	"github.com/LFroesch/gravily/internal/utils"
)

var (
	borderColor  = lipgloss.Color("62")
	accentColor  = lipgloss.Color("99")
	mutedColor   = lipgloss.Color("240")
	errorColor   = lipgloss.Color("196")
	warningColor = lipgloss.Color("214")
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	panelHeight := m.panelHeight()
	fileList := m.renderFileList(m.listWidth(), panelHeight)
	previewPane := m.renderPreview(m.width-m.listWidth(), panelHeight)
	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, fileList, previewPane)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		mainContent,
		m.renderBottomBox(),
		m.renderStatusBar(),
	)
}

func (m *model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(m.width)

	path := m.nav.Path
	if path == "" {
		path = "."
	}
	title := ansi.Truncate(fmt.Sprintf("Gravily - %s", path), m.width-2, "…")
	return titleStyle.Render(title)
}

// renderFileList renders the listing panel with the given outer width
func (m *model) renderFileList(width, height int) string {
	inner := max(width-4, 1)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	modifiedStyle := lipgloss.NewStyle().Foreground(warningColor).Bold(true)

	// Live highlight of what a Command mode jump would match
	var matches map[int][]int
	if m.input.Mode == input.Command {
		matches = make(map[int][]int)
		for _, r := range search.FuzzyMatchNames(m.input.Value(), m.nav.Entries) {
			matches[r.Index] = r.MatchedIndexes
		}
	}

	selected, hasSelection := m.nav.Selected()
	var lines []string
	if len(m.nav.Entries) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(mutedColor).Render("(empty)"))
	}

	end := min(m.scrollOffset+height, len(m.nav.Entries))
	for i := m.scrollOffset; i < end; i++ {
		name := m.nav.Entries[i]
		full := filepath.Join(m.nav.Path, name)

		prefix := strings.Repeat(" ", len(highlightSymbol))
		if hasSelection && i == selected {
			prefix = highlightSymbol
		}

		icon := ""
		if m.cfg.ShowIcons {
			icon = utils.GetFileIcon(name)
			if info, err := os.Stat(full); err == nil && info.IsDir() {
				icon = utils.DirIcon
			}
			icon += " "
		}

		marker := ""
		if m.git.IsModified(full) {
			marker = " " + modifiedStyle.Render("M")
		}

		avail := inner - lipgloss.Width(prefix) - lipgloss.Width(icon) - lipgloss.Width(marker)
		display := utils.TruncateName(name, avail)
		if idx, ok := matches[i]; ok && display == name {
			display = utils.HighlightMatches(display, idx)
		}

		line := prefix + icon + display
		if hasSelection && i == selected {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}
		lines = append(lines, line+marker)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2).
		Height(height).
		MaxHeight(height + 2).
		Render(strings.Join(lines, "\n"))
}

func (m *model) renderPreview(width, height int) string {
	inner := max(width-4, 1)
	var content string

	switch m.preview.Kind {
	case preview.KindListing:
		var lines []string
		for _, name := range m.preview.Entries {
			if len(lines) == height {
				break
			}
			lines = append(lines, utils.TruncateName(name, inner))
		}
		content = strings.Join(lines, "\n")

	case preview.KindText:
		content = renderText(m.preview.Text, inner, height)

	case preview.KindImage:
		content = renderCells(m.preview.Cells)

	case preview.KindError:
		content = lipgloss.NewStyle().
			Foreground(errorColor).
			Width(inner).
			Render(m.preview.Err.Error())
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2).
		Height(height).
		MaxHeight(height + 2).
		Render(content)
}

// renderText shows the first lines of a file as plain text. Escape
// sequences are stripped so file content cannot drive the terminal.
func renderText(text string, width, height int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")

	lines := strings.Split(text, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(ansi.Strip(line), width, "")
	}
	return strings.Join(lines, "\n")
}

func renderCells(cells [][]preview.Cell) string {
	rows := make([]string, 0, len(cells))
	for _, row := range cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(lipgloss.NewStyle().
				Foreground(utils.HexColor(c.FG)).
				Background(utils.HexColor(c.BG)).
				Render(string(c.Glyph)))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// renderBottomBox shows, in order of priority, the prompt of the active
// mode, the last error, or details of the hovered entry.
func (m *model) renderBottomBox() string {
	var title, body string
	color := borderColor

	switch mode := m.input.Mode; mode.Phase {
	case input.PhaseOperation, input.PhaseConfirmation:
		if mode.Phase == input.PhaseOperation && mode.Kind != input.Delete {
			title, body = m.inputPrompt(mode.Kind), m.input.Buffer.View()
		} else {
			title = "Confirmation ('Y' to Confirm or 'N' to Cancel)"
			body = m.confirmationText(mode.Kind)
			color = warningColor
		}
	case input.PhaseCommand:
		title, body = "Jump to...", m.input.Buffer.View()
	default:
		if m.input.LastError != "" {
			title, body = "Error ('x' to close)", m.input.LastError
			color = errorColor
		} else {
			title, body = "Info", m.hoveredInfo()
		}
	}

	inner := max(m.width-4, 1)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(m.width - 2).
		Render(titleStyle.Render(ansi.Truncate(title, inner, "…")) + "\n" + ansi.Truncate(body, inner, "…"))
}

func (m *model) inputPrompt(kind input.Kind) string {
	if kind == input.Rename {
		name, _ := m.nav.HoveredName()
		return fmt.Sprintf("Renaming file %q into...", name)
	}
	return "Adding new file named..."
}

func (m *model) confirmationText(kind input.Kind) string {
	name, _ := m.nav.HoveredName()
	switch kind {
	case input.Add:
		return fmt.Sprintf("Are you sure you want to make %q as a new file?", m.input.Value())
	case input.Rename:
		return fmt.Sprintf("Are you sure you want to rename %q to \"%s\"?", name, m.input.Value())
	case input.Delete:
		return fmt.Sprintf("Are you sure you want to delete %q?", name)
	}
	return ""
}

func (m *model) hoveredInfo() string {
	path, ok := m.nav.Hovered()
	if !ok {
		return lipgloss.NewStyle().Foreground(mutedColor).Render("nothing selected")
	}
	info, err := os.Lstat(path)
	if err != nil {
		return filepath.Base(path)
	}
	if info.IsDir() {
		return fmt.Sprintf("%s  %s", info.Name(), info.Mode().String())
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		info.Name(),
		utils.FormatFileSizeColored(info.Size()),
		info.Mode().String(),
		info.ModTime().Format("Jan 2, 2006 15:04"))
}

func (m *model) renderStatusBar() string {
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(mutedColor).
		Padding(0, 1).
		Width(m.width)

	var statusText string
	if i, ok := m.nav.Selected(); ok {
		statusText = fmt.Sprintf("%d/%d", i+1, len(m.nav.Entries))
	} else {
		statusText = "0/0"
	}
	if m.git.Branch != "" {
		statusText += fmt.Sprintf(" | Branch: %s", m.git.Branch)
	}
	statusText += " | " + m.input.Mode.String()
	if m.statusMsg != "" {
		statusText += " | " + m.statusMsg
	}

	rightSide := m.help.ShortHelpView(m.input.Keys.ShortHelp())

	totalWidth := m.width - 2 // Account for padding
	padding := totalWidth - lipgloss.Width(statusText) - lipgloss.Width(rightSide)
	if padding < 1 {
		return statusStyle.Render(ansi.Truncate(statusText, totalWidth, "…"))
	}
	return statusStyle.Render(statusText + strings.Repeat(" ", padding) + rightSide)
}
