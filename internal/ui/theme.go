package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines colors used across the UI. Host apps can supply their own.
type Theme struct {
	KeyColor       color.Color // Keys in node rows (left column)
	ValueColor     color.Color // Values in node rows (right column)
	HeaderFG       color.Color // Panel title text
	HeaderBG       color.Color // Panel title background
	SelectedFG     color.Color // Selected row foreground
	SelectedBG     color.Color // Selected row background
	SeparatorColor color.Color // Borders and separator lines
	StatusColor    color.Color // Normal status bar text
	StatusError    color.Color // Error status bar text
	StatusSuccess  color.Color // Success status bar text
	FooterFG       color.Color // Footer text
	FooterBG       color.Color // Footer background
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		KeyColor:       lipgloss.Color("81"),  // cyan keys for contrast
		ValueColor:     lipgloss.Color("246"), // muted gray values
		HeaderFG:       lipgloss.Color("81"),
		HeaderBG:       lipgloss.Color("236"), // charcoal header background
		SelectedFG:     lipgloss.Color("250"),
		SelectedBG:     lipgloss.Color("24"), // deep teal selection
		SeparatorColor: lipgloss.Color("238"),
		StatusColor:    lipgloss.Color("81"),
		StatusError:    lipgloss.Color("203"), // softer red for errors
		StatusSuccess:  lipgloss.Color("114"), // mint success
		FooterFG:       lipgloss.Color("244"),
		FooterBG:       lipgloss.Color("236"),
	}
}

var currentTheme = DefaultTheme()

// SetTheme overrides the global theme.
func SetTheme(t Theme) {
	currentTheme = t
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	return currentTheme
}
