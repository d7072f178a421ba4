package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"

	"github.com/LFroesch/gravily/internal/config"
	"github.com/LFroesch/gravily/internal/git"
	"github.com/LFroesch/gravily/internal/input"
	"github.com/LFroesch/gravily/internal/logger"
	"github.com/LFroesch/gravily/internal/navigator"
	"github.com/LFroesch/gravily/internal/preview"
)

// File open result message
type fileOpenResultMsg struct {
	success bool
	message string
	path    string
}

// Terminal dimension constants
const (
	minTerminalWidth  = 40
	minTerminalHeight = 10
	uiOverhead        = 8 // Header (1) + panel borders (2) + bottom box (4) + status (1)
)

const (
	highlightSymbol = ">    "
	statusDuration  = 3 * time.Second
)

type model struct {
	nav      *navigator.Navigator
	input    input.State
	cfg      *config.Config
	renderer *preview.Renderer
	preview  preview.Preview
	git      git.Status
	help     help.Model

	width        int
	height       int
	scrollOffset int

	statusMsg    string
	statusExpiry time.Time
}

func newModel(startPath string, cfg *config.Config) *model {
	if cfg == nil {
		cfg = config.Default()
	}

	m := &model{
		input: input.NewState(),
		cfg:   cfg,
		renderer: preview.NewRenderer(
			cfg.MaxTextBytes,
			time.Duration(cfg.ImageCacheTTL)*time.Second,
			cfg.ImageFilter,
		),
		help: help.New(),
	}
	m.renderer.MaxPixels = cfg.MaxImagePixels

	nav, err := navigator.New(startPath, cfg.SortEntries)
	m.nav = nav
	if err != nil {
		m.input.LastError = fmt.Sprintf("Error entering dir %s: %v", startPath, err)
		logger.Warn("%s", m.input.LastError)
	}

	m.loadGit()
	m.updatePreview()
	return m
}

func (m *model) loadGit() {
	if !m.cfg.GitStatus || m.nav.Path == "" {
		m.git = git.Status{}
		return
	}
	m.git = git.Load(m.nav.Path)
}

// panelHeight is the number of content rows inside the bordered panels
func (m *model) panelHeight() int {
	h := m.height - uiOverhead
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) listWidth() int {
	return m.width / 2
}

// previewSize is the cell grid available inside the preview panel
func (m *model) previewSize() (int, int) {
	if m.width == 0 || m.height == 0 {
		return 0, 0
	}
	w := m.width - m.listWidth() - 4 // Border (2) + padding (2)
	if w < 0 {
		w = 0
	}
	return w, m.panelHeight()
}

func (m *model) updatePreview() {
	path, hovering := m.nav.Hovered()
	w, h := m.previewSize()
	m.preview = m.renderer.Render(path, hovering, w, h)
}

// ensureVisible keeps the selection inside the list viewport
func (m *model) ensureVisible() {
	visible := m.panelHeight()
	i, ok := m.nav.Selected()
	if !ok {
		m.scrollOffset = 0
		return
	}
	if i < m.scrollOffset {
		m.scrollOffset = i
	}
	if i >= m.scrollOffset+visible {
		m.scrollOffset = i - visible + 1
	}
	maxScroll := len(m.nav.Entries) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(statusDuration)
}
