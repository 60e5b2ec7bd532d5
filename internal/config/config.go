package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type ServerOptions struct {
	Address string `toml:"address"`
}

type EditorOptions struct {
	CharWidth  int `toml:"char-width"`
	LineHeight int `toml:"line-height"`
}

type Theme struct {
	Text    string `toml:"text"`
	Caret   string `toml:"caret"`
	Overlay string `toml:"overlay"`
}

type DisplayOptions struct {
	// Mirror renders the same drawing commands onto the local terminal.
	Mirror bool `toml:"mirror"`
}

type LogOptions struct {
	Debug bool   `toml:"debug"`
	File  string `toml:"file"`
}

type Config struct {
	Server  ServerOptions  `toml:"server"`
	Editor  EditorOptions  `toml:"editor"`
	Theme   Theme          `toml:"theme"`
	Display DisplayOptions `toml:"display"`
	Log     LogOptions     `toml:"log"`
}

func Default() Config {
	return Config{
		Server: ServerOptions{
			Address: "127.0.0.1:5005",
		},
		Editor: EditorOptions{
			CharWidth:  8,
			LineHeight: 14,
		},
		Theme: Theme{
			Text:    "#000000",
			Caret:   "#000000",
			Overlay: "#ffffff",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if userCfg.Server.Address != "" {
		cfg.Server.Address = userCfg.Server.Address
	}
	if userCfg.Editor.CharWidth > 0 {
		cfg.Editor.CharWidth = userCfg.Editor.CharWidth
	}
	if userCfg.Editor.LineHeight > 0 {
		cfg.Editor.LineHeight = userCfg.Editor.LineHeight
	}
	if userCfg.Theme.Text != "" {
		cfg.Theme.Text = userCfg.Theme.Text
	}
	if userCfg.Theme.Caret != "" {
		cfg.Theme.Caret = userCfg.Theme.Caret
	}
	if userCfg.Theme.Overlay != "" {
		cfg.Theme.Overlay = userCfg.Theme.Overlay
	}
	if userCfg.Display.Mirror {
		cfg.Display.Mirror = true
	}
	if userCfg.Log.Debug {
		cfg.Log.Debug = true
	}
	if userCfg.Log.File != "" {
		cfg.Log.File = userCfg.Log.File
	}

	if err := normalizeTheme(&cfg.Theme); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// normalizeTheme rewrites every colour as lower-case "#rrggbb", the only
// form the display protocol accepts.
func normalizeTheme(t *Theme) error {
	for _, field := range []struct {
		name string
		val  *string
	}{
		{"text", &t.Text},
		{"caret", &t.Caret},
		{"overlay", &t.Overlay},
	} {
		c, err := colorful.Hex(*field.val)
		if err != nil {
			return fmt.Errorf("theme %s: %w", field.name, err)
		}
		*field.val = c.Hex()
	}
	return nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("EDITOR_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "editor"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "editor"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the configured log file, defaulting to the config dir.
func (c Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "editor.log"), nil
}
