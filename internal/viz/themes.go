package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme for canvases and the viewer.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeCyberpunk  = Theme{"cyberpunk", "#ff00ff", "#00ffff", "#ffff00", "#666666", "#00ff00", "#ff8800", "#ff0000"}
	ThemeRetroGreen = Theme{"retro", "#00ff00", "#00cc00", "#88ff88", "#005500", "#88ff88", "#ffff00", "#ff0000"}
	ThemeMinimal    = Theme{"minimal", "#ffffff", "#cccccc", "#0088ff", "#888888", "#00ff00", "#ffaa00", "#ff0000"}
	ThemeOcean      = Theme{"ocean", "#0077be", "#00a8cc", "#ffd700", "#4488aa", "#00ff88", "#ffcc00", "#ff4444"}
	ThemeSunset     = Theme{"sunset", "#ff6b6b", "#feca57", "#ff9ff3", "#8b6b8c", "#5fd068", "#ffc048", "#ff4757"}
	ThemeForest     = Theme{"forest", "#7ccf5a", "#c8a165", "#f2e94e", "#55704a", "#7ccf5a", "#f2b84e", "#e05a47"}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal, ThemeOcean, ThemeSunset, ThemeForest}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			break
		}
	}
	return CurrentTheme
}

// Ink styles fractal strokes in the theme's primary color.
func (t Theme) Ink() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Primary)
}

// Heading styles titles in the theme's secondary color.
func (t Theme) Heading() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)
}

func (t Theme) Faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// Status styles a draw state label.
func (t Theme) Status(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
