package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Background          string `toml:"background"`
	OffsetColor         string `toml:"offset_color"`
	ZeroColor           string `toml:"zero_color"`
	DirtyColor          string `toml:"dirty_color"`
	CommittedColor      string `toml:"committed_color"`
	SelectionBackground string `toml:"selection_background"`
	SelectionForeground string `toml:"selection_foreground"`
	CaretBackground     string `toml:"caret_background"`
	CaretInsertBg       string `toml:"caret_insert_background"`
	StatusBackground    string `toml:"status_background"`
	StatusForeground    string `toml:"status_foreground"`
	StatusHighlight     string `toml:"status_highlight"`
	PromptColor         string `toml:"prompt_color"`
	ErrorColor          string `toml:"error_color"`
	UnsavedColor        string `toml:"unsaved_color"`
	SeparatorColor      string `toml:"separator_color"`
}

type Editor struct {
	BytesPerLine   int    `toml:"bytes_per_line"`
	GroupSize      int    `toml:"group_size"`
	HexUpper       bool   `toml:"hex_upper"`
	CharPane       bool   `toml:"char_pane"`
	OverwritePaste bool   `toml:"overwrite_paste"`
	RetainChanges  bool   `toml:"retain_changes"`
	Charset        string `toml:"charset"`
}

type Config struct {
	Theme  Theme  `toml:"theme"`
	Editor Editor `toml:"editor"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			Background:          "#000000",
			OffsetColor:         "#888888",
			ZeroColor:           "#555555",
			DirtyColor:          "#FF5555",
			CommittedColor:      "#55FF55",
			SelectionBackground: "#FFAA00",
			SelectionForeground: "#000000",
			CaretBackground:     "#0000FF",
			CaretInsertBg:       "#FF0000",
			StatusBackground:    "#0000FF",
			StatusForeground:    "#FFFFFF",
			StatusHighlight:     "#FFFF00",
			PromptColor:         "#FFFFFF",
			ErrorColor:          "#FF0000",
			UnsavedColor:        "#FF0000",
			SeparatorColor:      "#333333",
		},
		Editor: Editor{
			BytesPerLine:   16,
			GroupSize:      4,
			HexUpper:       true,
			CharPane:       true,
			OverwritePaste: false,
			RetainChanges:  false,
			Charset:        "ascii",
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hexgrid.toml"
	}
	return filepath.Join(home, ".config", "hexgrid", "hexgrid.toml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, err
	}

	cfg.sanitize()
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// sanitize repairs values a hand-edited file can break.
func (c *Config) sanitize() {
	if c.Editor.BytesPerLine < 1 {
		c.Editor.BytesPerLine = 16
	}
	if c.Editor.GroupSize < 0 {
		c.Editor.GroupSize = 0
	}
}

type Styles struct {
	Background  lipgloss.Style
	Offset      lipgloss.Style
	Normal      lipgloss.Style
	Zero        lipgloss.Style
	Dirty       lipgloss.Style
	Committed   lipgloss.Style
	Selection   lipgloss.Style
	Caret       lipgloss.Style
	CaretInsert lipgloss.Style
	Status      lipgloss.Style
	StatusHigh  lipgloss.Style
	Prompt      lipgloss.Style
	Error       lipgloss.Style
	Unsaved     lipgloss.Style
	Separator   lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Background)),
		Offset: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.OffsetColor)),
		Normal: lipgloss.NewStyle(),
		Zero: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ZeroColor)),
		Dirty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DirtyColor)),
		Committed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.CommittedColor)),
		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.SelectionBackground)).
			Foreground(lipgloss.Color(theme.SelectionForeground)),
		Caret: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CaretBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		CaretInsert: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CaretInsertBg)).
			Foreground(lipgloss.Color("#FFFFFF")),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBackground)).
			Foreground(lipgloss.Color(theme.StatusForeground)),
		StatusHigh: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBackground)).
			Foreground(lipgloss.Color(theme.StatusHighlight)).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.PromptColor)).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ErrorColor)).
			Bold(true),
		Unsaved: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.UnsavedColor)),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SeparatorColor)),
	}
}
