// Package navigator owns the directory being browsed: its path, the
// listing captured at the last read, the selection cursor and the stack
// of selections to restore when ascending.
package navigator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const noSelection = -1

// Navigator is the listing state for a single directory. Entries and the
// selection are only valid for Path as of the last read.
type Navigator struct {
	Path    string
	Entries []string

	// SortEntries orders names case-insensitively instead of keeping the
	// filesystem's enumeration order.
	SortEntries bool

	selected  int
	ancestors []int
}

// New reads path and selects its first entry. A read failure is returned
// alongside a usable navigator with an empty listing.
func New(path string, sortEntries bool) (*Navigator, error) {
	n := &Navigator{
		Path:        path,
		SortEntries: sortEntries,
		selected:    noSelection,
	}
	err := n.reload()
	n.selectFirst()
	return n, err
}

// Selected returns the selection index, or false when nothing is selected
func (n *Navigator) Selected() (int, bool) {
	if n.selected == noSelection {
		return 0, false
	}
	return n.selected, true
}

// Depth is the number of net descents below the starting directory
func (n *Navigator) Depth() int {
	return len(n.ancestors)
}

// HoveredName returns the name of the entry under the cursor
func (n *Navigator) HoveredName() (string, bool) {
	i, ok := n.Selected()
	if !ok {
		return "", false
	}
	return n.Entries[i], true
}

// Hovered returns the full path of the entry under the cursor. With no
// selection it returns the current directory and false.
func (n *Navigator) Hovered() (string, bool) {
	name, ok := n.HoveredName()
	if !ok {
		return n.Path, false
	}
	return filepath.Join(n.Path, name), true
}

// SelectNext moves the cursor down, stopping at the last entry
func (n *Navigator) SelectNext() {
	if len(n.Entries) == 0 {
		n.selected = noSelection
		return
	}
	if n.selected == noSelection {
		n.selected = 0
		return
	}
	if n.selected < len(n.Entries)-1 {
		n.selected++
	}
}

// SelectPrevious moves the cursor up, stopping at the first entry
func (n *Navigator) SelectPrevious() {
	if len(n.Entries) == 0 {
		n.selected = noSelection
		return
	}
	if n.selected == noSelection {
		n.selected = 0
		return
	}
	if n.selected > 0 {
		n.selected--
	}
}

// JumpTo selects entry i if it exists
func (n *Navigator) JumpTo(i int) {
	if i >= 0 && i < len(n.Entries) {
		n.selected = i
	}
}

// EnterHovered descends into the hovered entry when it is a directory.
// Files are a no-op. A stat or read failure is returned and leaves the
// navigator where it was.
func (n *Navigator) EnterHovered() error {
	i, ok := n.Selected()
	if !ok {
		return nil
	}

	candidate := filepath.Join(n.Path, n.Entries[i])
	info, err := os.Stat(candidate)
	if err != nil {
		return fmt.Errorf("Error getting metadata of path %s: %w", candidate, err)
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := n.read(candidate)
	if err != nil {
		return fmt.Errorf("Error entering dir %s: %w", candidate, err)
	}

	n.ancestors = append(n.ancestors, i)
	n.Path = candidate
	n.Entries = entries
	n.selectFirst()
	return nil
}

// ExitCurrent ascends to the parent directory and restores the selection
// recorded when it was left. At the filesystem root it does nothing.
func (n *Navigator) ExitCurrent() error {
	parent, ok := n.parent()
	if !ok {
		return nil
	}

	n.Path = parent
	err := n.reload()

	if last := len(n.ancestors) - 1; last >= 0 {
		restore := n.ancestors[last]
		n.ancestors = n.ancestors[:last]
		n.selected = restore
		n.clampSelection()
	} else {
		n.selectFirst()
	}

	if err != nil {
		return fmt.Errorf("Error entering dir %s: %w", parent, err)
	}
	return nil
}

// Refresh re-reads the current directory. When it can no longer be read
// the navigator falls back to the nearest readable ancestor and the first
// read error is returned.
func (n *Navigator) Refresh() error {
	err := n.reload()
	if err == nil {
		n.clampSelection()
		return nil
	}

	first := fmt.Errorf("Error entering dir %s: %w", n.Path, err)
	for {
		if _, ok := n.parent(); !ok {
			n.clampSelection()
			return first
		}
		if n.ExitCurrent() == nil {
			return first
		}
	}
}

func (n *Navigator) parent() (string, bool) {
	if n.Path == "" {
		return "", false
	}
	clean := filepath.Clean(n.Path)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", false
	}
	return parent, true
}

func (n *Navigator) reload() error {
	entries, err := n.read(n.Path)
	if err != nil {
		n.Entries = nil
		return err
	}
	n.Entries = entries
	return nil
}

// read lists names in enumeration order. os.ReadDir sorts, so the
// directory is read through File.ReadDir instead.
func (n *Navigator) read(path string) ([]string, error) {
	if path == "" {
		path = "."
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirEntries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		names = append(names, e.Name())
	}
	if n.SortEntries {
		sort.SliceStable(names, func(i, j int) bool {
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		})
	}
	return names, nil
}

func (n *Navigator) selectFirst() {
	if len(n.Entries) == 0 {
		n.selected = noSelection
		return
	}
	n.selected = 0
}

func (n *Navigator) clampSelection() {
	switch {
	case len(n.Entries) == 0:
		n.selected = noSelection
	case n.selected == noSelection:
		n.selected = 0
	case n.selected >= len(n.Entries):
		n.selected = len(n.Entries) - 1
	}
}
