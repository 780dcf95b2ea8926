package tui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// logoTheme is the seasonal coloring of the menu logo.
type logoTheme int

const (
	themeDefault logoTheme = iota
	themeHalloween
	themeChristmas
)

// detectTheme picks a theme from YOYO_THEME, then from the date.
func detectTheme(now time.Time) logoTheme {
	switch strings.ToLower(os.Getenv("YOYO_THEME")) {
	case "halloween":
		return themeHalloween
	case "xmas", "christmas":
		return themeChristmas
	}

	switch {
	case now.Month() == time.October && now.Day() == 31:
		return themeHalloween
	case now.Month() == time.December && now.Day() == 25:
		return themeChristmas
	}
	return themeDefault
}

// renderLogo colors the logo line by line, cycling the theme's palette.
func renderLogo(logo string, theme logoTheme) string {
	var palette []string
	switch theme {
	case themeHalloween:
		palette = []string{"208"}
	case themeChristmas:
		palette = []string{"196", "46"}
	default:
		// Sonic, Shadow and Amy.
		palette = []string{"33", "196", "201"}
	}

	lines := strings.Split(logo, "\n")
	for i, line := range lines {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(palette[i%len(palette)])).Bold(true)
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
