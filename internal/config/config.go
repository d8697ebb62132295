package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Normal map[string]string `toml:"normal"`
	Insert map[string]string `toml:"insert"`
}

type EditorOptions struct {
	Mouse           bool `toml:"mouse"`
	ScrollPages     int  `toml:"scroll-pages"`
	RestorePosition bool `toml:"restore-position"`
	HistorySize     int  `toml:"history-size"`
	DebugLog        bool `toml:"debug-log"`
}

type Theme struct {
	Theme                     string `toml:"theme"`
	OffsetForeground          string `toml:"offset-foreground"`
	OffsetActiveForeground    string `toml:"offset-active-foreground"`
	SeparatorForeground       string `toml:"separator-foreground"`
	AsciiForeground           string `toml:"ascii-foreground"`
	CursorForeground          string `toml:"cursor-foreground"`
	CursorNormalBackground    string `toml:"cursor-normal-background"`
	CursorInsertBackground    string `toml:"cursor-insert-background"`
	StatusFilenameForeground  string `toml:"status-filename-foreground"`
	StatusSizeForeground      string `toml:"status-size-foreground"`
	InsertIndicatorForeground string `toml:"insert-indicator-foreground"`
	ErrorForeground           string `toml:"error-foreground"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

// userEditorOptions mirrors EditorOptions with pointers so an explicit
// "false" in config.toml can be told apart from an absent key.
type userEditorOptions struct {
	Mouse           *bool `toml:"mouse"`
	ScrollPages     int   `toml:"scroll-pages"`
	RestorePosition *bool `toml:"restore-position"`
	HistorySize     int   `toml:"history-size"`
	DebugLog        *bool `toml:"debug-log"`
}

type userConfig struct {
	Editor userEditorOptions `toml:"editor"`
	Theme  Theme             `toml:"theme"`
	Keymap Keymap            `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Mouse:           true,
			ScrollPages:     5,
			RestorePosition: true,
			HistorySize:     100,
			DebugLog:        false,
		},
		Theme: Theme{
			OffsetForeground:          "#808080",
			OffsetActiveForeground:    "#FFFFFF",
			SeparatorForeground:       "default",
			AsciiForeground:           "#808080",
			CursorForeground:          "#000000",
			CursorNormalBackground:    "#808080",
			CursorInsertBackground:    "#FFFFFF",
			StatusFilenameForeground:  "#C8C8C8",
			StatusSizeForeground:      "#A6A28C",
			InsertIndicatorForeground: "#AE5F0D",
			ErrorForeground:           "#FF5F5F",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"h":      "move_left",
				"j":      "move_down",
				"k":      "move_up",
				"l":      "move_right",
				"left":   "move_left",
				"down":   "move_down",
				"up":     "move_up",
				"right":  "move_right",
				"pgup":   "page_up",
				"pgdn":   "page_down",
				"ctrl+b": "page_up",
				"ctrl+f": "page_down",
				"ctrl+u": "page_up",
				"ctrl+d": "page_down",
				"i":      "enter_insert",
				":":      "enter_command",
			},
			Insert: map[string]string{
				"esc":   "enter_normal",
				"left":  "move_left",
				"down":  "move_down",
				"up":    "move_up",
				"right": "move_right",
				"pgup":  "page_up",
				"pgdn":  "page_down",
			},
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

	var userCfg userConfig
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.Mouse != nil {
		cfg.Editor.Mouse = *userCfg.Editor.Mouse
	}
	if userCfg.Editor.ScrollPages > 0 {
		cfg.Editor.ScrollPages = userCfg.Editor.ScrollPages
	}
	if userCfg.Editor.RestorePosition != nil {
		cfg.Editor.RestorePosition = *userCfg.Editor.RestorePosition
	}
	if userCfg.Editor.HistorySize > 0 {
		cfg.Editor.HistorySize = userCfg.Editor.HistorySize
	}
	if userCfg.Editor.DebugLog != nil {
		cfg.Editor.DebugLog = *userCfg.Editor.DebugLog
	}

	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	for k, v := range userCfg.Keymap.Normal {
		cfg.Keymap.Normal[k] = v
	}
	for k, v := range userCfg.Keymap.Insert {
		cfg.Keymap.Insert[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&dst.OffsetForeground, src.OffsetForeground)
	set(&dst.OffsetActiveForeground, src.OffsetActiveForeground)
	set(&dst.SeparatorForeground, src.SeparatorForeground)
	set(&dst.AsciiForeground, src.AsciiForeground)
	set(&dst.CursorForeground, src.CursorForeground)
	set(&dst.CursorNormalBackground, src.CursorNormalBackground)
	set(&dst.CursorInsertBackground, src.CursorInsertBackground)
	set(&dst.StatusFilenameForeground, src.StatusFilenameForeground)
	set(&dst.StatusSizeForeground, src.StatusSizeForeground)
	set(&dst.InsertIndicatorForeground, src.InsertIndicatorForeground)
	set(&dst.ErrorForeground, src.ErrorForeground)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads a theme file. Both a bare table and one wrapped in
// [theme] are accepted.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("VEX_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vex"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vex"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
