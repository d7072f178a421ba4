package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravily", "config.yaml")

	cfg := Load(path)

	require.NotNil(t, cfg)
	assert.Equal(t, int64(defaultMaxTextBytes), cfg.MaxTextBytes)
	assert.Equal(t, FilterNearest, cfg.ImageFilter)
	assert.False(t, cfg.SortEntries, "enumeration order is the default")

	// Missing file gets written so users can edit it
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := &Config{
		StartPath:     "/srv/data",
		SortEntries:   true,
		UseTrash:      true,
		MaxTextBytes:  4096,
		ImageCacheTTL: 60,
		ImageFilter:   FilterBilinear,
		ShowIcons:     false,
		GitStatus:     false,
	}

	require.NoError(t, Save(path, cfg))

	loaded := Load(path)
	assert.Equal(t, cfg, loaded)
}

func TestLoadClampsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "max_text_bytes: 10\nimage_cache_ttl: 999999\nimage_filter: lanczos\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg := Load(path)

	assert.Equal(t, int64(minMaxTextBytes), cfg.MaxTextBytes)
	assert.Equal(t, maxImageCacheTTL, cfg.ImageCacheTTL)
	assert.Equal(t, FilterNearest, cfg.ImageFilter)
}

func TestLoadClampsMaxImagePixels(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"missing", "max_text_bytes: 4096\n", defaultMaxImagePixels},
		{"zero", "max_image_pixels: 0\n", defaultMaxImagePixels},
		{"too low", "max_image_pixels: 5\n", minMaxImagePixels},
		{"too high", "max_image_pixels: 99999999999\n", maxMaxImagePixels},
		{"in range", "max_image_pixels: 2000000\n", 2_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.raw), 0644))
			assert.Equal(t, tt.want, Load(path).MaxImagePixels)
		})
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("use_trash: true\n"), 0644))

	cfg := Load(path)

	assert.True(t, cfg.UseTrash)
	assert.True(t, cfg.ShowIcons)
	assert.Equal(t, defaultImageCacheTTL, cfg.ImageCacheTTL)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_path: [unterminated"), 0644))

	cfg := Load(path)
	assert.Equal(t, Default(), cfg)
}

func TestResolveStartPath(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolveStartPath(dir, Default())
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	cfg := Default()
	cfg.StartPath = dir
	got, err = ResolveStartPath("", cfg)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	home := filepath.Join(dir, "home")
	t.Setenv("HOME", home)
	got, err = ResolveStartPath("", Default())
	require.NoError(t, err)
	assert.Equal(t, home, got)
}
