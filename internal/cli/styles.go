package cli

import (
	"github.com/Masterminds/semver/v3"
	"github.com/bridged-dev/bridged/internal/manifest"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#5FD7FF"})
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"})
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"})
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"})
)

// displayVersion renders a version for listing. Semver versions get a "v"
// prefix; anything else is shown as-is.
func displayVersion(v string) string {
	if v == "" || v == manifest.UnknownVersion {
		return mutedStyle.Render(manifest.UnknownVersion)
	}
	if _, err := semver.StrictNewVersion(v); err == nil {
		return versionStyle.Render("v" + v)
	}
	return versionStyle.Render(v)
}
