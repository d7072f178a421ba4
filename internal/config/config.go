package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/LFroesch/gravily/internal/logger"
)

const (
	FilterNearest  = "nearest"
	FilterBilinear = "bilinear"

	defaultMaxTextBytes  = 1024 * 1024
	minMaxTextBytes      = 1024
	maxMaxTextBytes      = 64 * 1024 * 1024
	defaultImageCacheTTL = 300
	maxImageCacheTTL     = 3600

	defaultMaxImagePixels = 40_000_000
	minMaxImagePixels     = 10_000
	maxMaxImagePixels     = 128 * 1024 * 1024 // 512 MiB of RGBA
)

// Config holds all gravily configuration
type Config struct {
	StartPath      string `yaml:"start_path"`   // Empty means the user's home directory
	SortEntries    bool   `yaml:"sort_entries"` // Off keeps filesystem enumeration order
	UseTrash       bool   `yaml:"use_trash"`    // Move deleted files to the system trash
	MaxTextBytes   int64  `yaml:"max_text_bytes"`
	MaxImagePixels int64  `yaml:"max_image_pixels"` // Larger images are not previewed
	ImageCacheTTL  int    `yaml:"image_cache_ttl"`  // seconds
	ImageFilter    string `yaml:"image_filter"`
	ShowIcons      bool   `yaml:"show_icons"`
	GitStatus      bool   `yaml:"git_status"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		StartPath:      "",
		SortEntries:    false,
		UseTrash:       false,
		MaxTextBytes:   defaultMaxTextBytes,
		MaxImagePixels: defaultMaxImagePixels,
		ImageCacheTTL:  defaultImageCacheTTL,
		ImageFilter:    FilterNearest,
		ShowIcons:      true,
		GitStatus:      true,
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "gravily", "config.yaml"), nil
}

// Load reads config from path, or ~/.config/gravily/config.yaml when path
// is empty. A missing file is created with defaults; an unreadable one
// falls back to defaults.
func Load(path string) *Config {
	defaultConfig := Default()

	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			logger.Error("Failed to get home directory: %v", err)
			return defaultConfig
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := Save(path, defaultConfig); err != nil {
				logger.Warn("Failed to save default config: %v", err)
			}
		} else {
			logger.Warn("Failed to read config file %s: %v, using defaults", path, err)
		}
		return defaultConfig
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
		return defaultConfig
	}

	config.validate()
	return config
}

func (c *Config) validate() {
	if c.MaxTextBytes <= 0 {
		c.MaxTextBytes = defaultMaxTextBytes
	} else if c.MaxTextBytes < minMaxTextBytes {
		logger.Warn("max_text_bytes too low (%d), using minimum of %d", c.MaxTextBytes, minMaxTextBytes)
		c.MaxTextBytes = minMaxTextBytes
	} else if c.MaxTextBytes > maxMaxTextBytes {
		logger.Warn("max_text_bytes too high (%d), using maximum of %d", c.MaxTextBytes, maxMaxTextBytes)
		c.MaxTextBytes = maxMaxTextBytes
	}

	if c.MaxImagePixels <= 0 {
		c.MaxImagePixels = defaultMaxImagePixels
	} else if c.MaxImagePixels < minMaxImagePixels {
		logger.Warn("max_image_pixels too low (%d), using minimum of %d", c.MaxImagePixels, minMaxImagePixels)
		c.MaxImagePixels = minMaxImagePixels
	} else if c.MaxImagePixels > maxMaxImagePixels {
		logger.Warn("max_image_pixels too high (%d), using maximum of %d", c.MaxImagePixels, maxMaxImagePixels)
		c.MaxImagePixels = maxMaxImagePixels
	}

	if c.ImageCacheTTL <= 0 {
		c.ImageCacheTTL = defaultImageCacheTTL
	} else if c.ImageCacheTTL > maxImageCacheTTL {
		logger.Warn("image_cache_ttl too high (%d), using maximum of %d", c.ImageCacheTTL, maxImageCacheTTL)
		c.ImageCacheTTL = maxImageCacheTTL
	}

	switch c.ImageFilter {
	case FilterNearest, FilterBilinear:
	case "":
		c.ImageFilter = FilterNearest
	default:
		logger.Warn("Unknown image_filter %q, using %s", c.ImageFilter, FilterNearest)
		c.ImageFilter = FilterNearest
	}
}

// Save writes config to path
func Save(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", filepath.Dir(path), err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", path, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// ResolveStartPath picks the first directory to show: the explicit
// argument, then start_path, then the home directory. When the home
// directory cannot be resolved the path is left empty and the error is
// returned as a warning for the caller to log.
func ResolveStartPath(arg string, cfg *Config) (string, error) {
	if arg != "" {
		return absOrSelf(arg), nil
	}
	if cfg != nil && cfg.StartPath != "" {
		return absOrSelf(cfg.StartPath), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return home, nil
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
