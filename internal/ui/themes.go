package ui

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the palette used for CLI output.
type Theme struct {
	// Name is the identifier of the theme.
	Name    string
	Accent  lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  lipgloss.Color("#FF8C00"),
		Text:    lipgloss.Color("#E0E0E0"),
		Success: lipgloss.Color("#9ece6a"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// LightTheme uses darker colours for light backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Accent:  lipgloss.Color("#005FAF"),
		Text:    lipgloss.Color("#1C1C1C"),
		Success: lipgloss.Color("#008700"),
		Error:   lipgloss.Color("#AF0000"),
		Dim:     lipgloss.Color("#585858"),
	}

	// NoColorTheme renders text with the terminal's default colours.
	NoColorTheme = Theme{
		Name:    "none",
		Accent:  lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetTheme changes the active theme by name ("dark", "light", "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects NoColorTheme when noColor is set or NO_COLOR is present
// in the environment (https://no-color.org/), and DarkTheme otherwise.
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetTheme("none")
		return
	}
	SetTheme("dark")
}

// Styles holds the lipgloss styles derived from a theme for one writer.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles builds styles for the active theme. The renderer inspects w so
// that colour is dropped automatically when w is not a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	th := GetCurrentTheme()
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(th.Accent),
		Label: r.NewStyle().Foreground(th.Dim).Width(36),
		Value: r.NewStyle().Foreground(th.Text),
		Pass:  r.NewStyle().Bold(true).Foreground(th.Success),
		Fail:  r.NewStyle().Bold(true).Foreground(th.Error),
		Dim:   r.NewStyle().Foreground(th.Dim),
	}
}
