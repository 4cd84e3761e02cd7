package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the external programs the sidebar shells out to, tree display
// options, filesystem watch parameters, and theme colors.
type Config struct {
	Viewer struct {
		Command  []string `yaml:"command"`  // Preferred file viewer argv, e.g. [glow, -p]
		Fallback []string `yaml:"fallback"` // Pager used when the viewer is not on PATH
	} `yaml:"viewer"`
	Editor struct {
		EnvVar    string   `yaml:"env_var"`   // Environment variable consulted first
		Fallbacks []string `yaml:"fallbacks"` // Editors tried in order when the variable is unset
	} `yaml:"editor"`
	Tree struct {
		ShowHidden    bool `yaml:"show_hidden"`    // Show dotfiles in listings
		DimIgnored    bool `yaml:"dim_ignored"`    // Dim entries matched by git check-ignore
	} `yaml:"tree"`
	Watch struct {
		Enabled    bool     `yaml:"enabled"`     // Refresh the tree on filesystem events
		DebounceMs int      `yaml:"debounce_ms"` // Quiet period before coalesced refresh
		Ignore     []string `yaml:"ignore"`      // Glob patterns for noise directories
	} `yaml:"watch"`
	Autosave struct {
		IntervalSeconds int `yaml:"interval_seconds"` // Periodic state flush (0 = disabled)
	} `yaml:"autosave"`
	Theme struct {
		Name      string `yaml:"name"`      // Theme name (default, dark, light)
		Directory string `yaml:"directory"` // Directory entry color
		File      string `yaml:"file"`      // File entry color
		Cursor    string `yaml:"cursor"`    // Cursor row background
		CursorFg  string `yaml:"cursor_fg"` // Cursor row foreground
		Dimmed    string `yaml:"dimmed"`    // Gitignored entry color
		Status    string `yaml:"status"`    // Status bar color
		Error     string `yaml:"error"`     // Error message color
	} `yaml:"theme"`
}

// LoadConfig loads configuration from the default location
// (~/.config/treeside/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "treeside", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if len(tempCfg.Viewer.Command) > 0 {
		cfg.Viewer.Command = tempCfg.Viewer.Command
	}
	if len(tempCfg.Viewer.Fallback) > 0 {
		cfg.Viewer.Fallback = tempCfg.Viewer.Fallback
	}
	if tempCfg.Editor.EnvVar != "" {
		cfg.Editor.EnvVar = tempCfg.Editor.EnvVar
	}
	if len(tempCfg.Editor.Fallbacks) > 0 {
		cfg.Editor.Fallbacks = tempCfg.Editor.Fallbacks
	}

	cfg.Tree.ShowHidden = tempCfg.Tree.ShowHidden
	cfg.Tree.DimIgnored = tempCfg.Tree.DimIgnored

	cfg.Watch.Enabled = tempCfg.Watch.Enabled
	if tempCfg.Watch.DebounceMs > 0 {
		cfg.Watch.DebounceMs = tempCfg.Watch.DebounceMs
	}
	if len(tempCfg.Watch.Ignore) > 0 {
		cfg.Watch.Ignore = tempCfg.Watch.Ignore
	}

	if tempCfg.Autosave.IntervalSeconds > 0 {
		cfg.Autosave.IntervalSeconds = tempCfg.Autosave.IntervalSeconds
	}

	if tempCfg.Theme.Name != "" {
		cfg.ApplyTheme(tempCfg.Theme.Name)
	}

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Viewer.Command = []string{"glow", "-p"}
	cfg.Viewer.Fallback = []string{"less"}

	cfg.Editor.EnvVar = "TREESIDE_EDITOR"
	cfg.Editor.Fallbacks = []string{"nano", "vi"}

	cfg.Tree.ShowHidden = true
	cfg.Tree.DimIgnored = true

	cfg.Watch.Enabled = true
	cfg.Watch.DebounceMs = 300
	cfg.Watch.Ignore = []string{
		".git",
		"node_modules",
		"__pycache__",
		".mypy_cache",
		".ruff_cache",
	}

	cfg.Autosave.IntervalSeconds = 30

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if len(c.Viewer.Command) == 0 {
		return fmt.Errorf("viewer command is required")
	}
	if len(c.Viewer.Fallback) == 0 {
		return fmt.Errorf("viewer fallback is required")
	}
	if len(c.Editor.Fallbacks) == 0 {
		return fmt.Errorf("at least one fallback editor is required")
	}

	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch debounce must be >= 0 milliseconds")
	}
	if c.Autosave.IntervalSeconds < 0 {
		return fmt.Errorf("autosave interval must be >= 0 seconds")
	}

	// Ignore patterns must compile
	for i, pattern := range c.Watch.Ignore {
		if pattern == "" {
			return fmt.Errorf("watch ignore pattern %d: pattern cannot be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("watch ignore pattern %q: %w", pattern, err)
		}
	}

	return nil
}

// IgnoreGlobs compiles the watch ignore patterns. Validate guarantees the
// patterns compile, so entries that still fail are skipped.
func (c *Config) IgnoreGlobs() []glob.Glob {
	globs := make([]glob.Glob, 0, len(c.Watch.Ignore))
	for _, pattern := range c.Watch.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		globs = append(globs, g)
	}
	return globs
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"directory": "#81A1C1",
			"file":      "#D8DEE9",
			"cursor":    "#4F4FB7",
			"cursor_fg": "#FFFFFF",
			"dimmed":    "#585858",
			"status":    "#959595",
			"error":     "#FF5555",
		},
		"dark": {
			"directory": "#5E81AC",
			"file":      "#C0C5CE",
			"cursor":    "#3B4252",
			"cursor_fg": "#ECEFF4",
			"dimmed":    "#4C566A",
			"status":    "#7B88A1",
			"error":     "#BF616A",
		},
		"light": {
			"directory": "#2E5AAC",
			"file":      "#3B4252",
			"cursor":    "#D0D7E5",
			"cursor_fg": "#1B1F26",
			"dimmed":    "#9AA5B5",
			"status":    "#6B7689",
			"error":     "#C0392B",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Directory = theme["directory"]
	c.Theme.File = theme["file"]
	c.Theme.Cursor = theme["cursor"]
	c.Theme.CursorFg = theme["cursor_fg"]
	c.Theme.Dimmed = theme["dimmed"]
	c.Theme.Status = theme["status"]
	c.Theme.Error = theme["error"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light"}
}
