package utils

import (
	"image/color"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestGetFileIcon(t *testing.T) {
	assert.Equal(t, "🐹", GetFileIcon("main.go"))
	assert.Equal(t, "🖼️", GetFileIcon("PHOTO.JPG"))
	assert.Equal(t, "📄", GetFileIcon("Makefile"))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 << 30, "3.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.size))
	}
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short.txt", TruncateName("short.txt", 20))
	assert.Equal(t, "", TruncateName("anything", 0))

	got := TruncateName("a-very-long-file-name.txt", 10)
	assert.Equal(t, 10, runewidth.StringWidth(got))
	assert.Equal(t, "a-very-lo…", got)

	// Wide runes take two columns each
	wide := TruncateName("日本語のファイル名", 7)
	assert.LessOrEqual(t, runewidth.StringWidth(wide), 7)
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#ff0000"), HexColor(color.RGBA{R: 255, A: 255}))
	assert.Equal(t, lipgloss.Color("#0a141e"), HexColor(color.RGBA{R: 10, G: 20, B: 30}))
}

func TestHighlightMatches(t *testing.T) {
	assert.Equal(t, "plain", HighlightMatches("plain", nil))

	out := HighlightMatches("readme.md", []int{0, 1})
	assert.Equal(t, "readme.md", ansi.Strip(out))
}
