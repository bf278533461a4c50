package ticketui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/danielolaszy/ticketiq/pkg/models"
)

// Theme defines the color palette of the ticket TUI. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	PriorityCritical lipgloss.Color
	PriorityHigh     lipgloss.Color
	PriorityMedium   lipgloss.Color
	PriorityLow      lipgloss.Color

	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	FocusBorder      lipgloss.Color
	HelpText         lipgloss.Color

	ErrorText  lipgloss.Color
	NoticeText lipgloss.Color
}

// PriorityColor returns the accent color for a priority. Unknown values
// return NormalText.
func (theme Theme) PriorityColor(priority models.Priority) lipgloss.Color {
	switch priority {
	case models.PriorityCritical:
		return theme.PriorityCritical
	case models.PriorityHigh:
		return theme.PriorityHigh
	case models.PriorityMedium:
		return theme.PriorityMedium
	case models.PriorityLow:
		return theme.PriorityLow
	default:
		return theme.NormalText
	}
}

// StatusColor returns the badge color for a status. Unknown values return
// FaintText.
func (theme Theme) StatusColor(status models.Status) lipgloss.Color {
	switch status {
	case models.StatusOpen:
		return theme.StatusOpen
	case models.StatusInProgress:
		return theme.StatusInProgress
	case models.StatusResolved:
		return theme.StatusResolved
	case models.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityCritical: lipgloss.Color("196"), // red
	PriorityHigh:     lipgloss.Color("208"), // orange
	PriorityMedium:   lipgloss.Color("114"), // green
	PriorityLow:      lipgloss.Color("75"),  // blue

	StatusOpen:       lipgloss.Color("75"),  // blue
	StatusInProgress: lipgloss.Color("220"), // yellow
	StatusResolved:   lipgloss.Color("114"), // green
	StatusClosed:     lipgloss.Color("245"), // gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	FocusBorder:      lipgloss.Color("63"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:  lipgloss.Color("203"),
	NoticeText: lipgloss.Color("114"),
}
