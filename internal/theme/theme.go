// Package theme holds the lipgloss styles shared by all views and
// applies the user's color overrides from Settings.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/effortlog/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Heat map endpoints, overridable via Settings.Colors.
var (
	HeatLowHex  = "#1a1a2e"
	HeatHighHex = "#ff6b6b"
)

// HeaderStyle is used for the application title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar and toasts.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ToastErrorStyle marks failure toasts in the status bar.
var ToastErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// PanelStyle wraps a view's content area.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DayCellStyle is the base style for calendar day cells.
var DayCellStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.NormalBorder()).
	BorderForeground(ColorBorder)

// TodayCellStyle highlights the current day.
var TodayCellStyle = DayCellStyle.
	BorderForeground(ColorBlue).
	Bold(true)

// WeekendCellStyle dims Saturday and Sunday cells.
var WeekendCellStyle = DayCellStyle.
	Foreground(ColorGray)

// HolidayCellStyle marks holiday cells.
var HolidayCellStyle = DayCellStyle.
	Foreground(ColorMagenta)

// EntryStyle is the base style for a log entry line.
var EntryStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedEntryStyle highlights the focused entry.
var SelectedEntryStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// GrabbedEntryStyle marks the entry being moved.
var GrabbedEntryStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorOrange).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorOrange)

// DropIndicatorStyle renders the single insertion slot during a move.
var DropIndicatorStyle = lipgloss.NewStyle().
	Foreground(ColorGreen).
	Bold(true)

// IssueKeyStyle decorates issue-tracker keys inside entry text.
var IssueKeyStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Underline(true)

// TotalStyle renders per-day hour totals.
var TotalStyle = lipgloss.NewStyle().
	Foreground(ColorGreen).
	Bold(true)

// HelpStyle is used for keyboard shortcut hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// Apply installs the user's color overrides on top of the defaults.
// Unknown names are ignored so a stale config cannot break rendering.
func Apply(settings model.Settings) {
	for name, value := range settings.Colors {
		switch name {
		case "accent":
			ColorBlue = lipgloss.AdaptiveColor{Dark: value, Light: value}
		case "success":
			ColorGreen = lipgloss.AdaptiveColor{Dark: value, Light: value}
		case "warning":
			ColorYellow = lipgloss.AdaptiveColor{Dark: value, Light: value}
		case "danger":
			ColorRed = lipgloss.AdaptiveColor{Dark: value, Light: value}
		case "heat-low":
			HeatLowHex = value
		case "heat-high":
			HeatHighHex = value
		}
	}

	if settings.Theme == "light" {
		lipgloss.SetHasDarkBackground(false)
	} else if settings.Theme == "dark" {
		lipgloss.SetHasDarkBackground(true)
	}

	rebuildStyles()
}

// rebuildStyles refreshes the style values that captured colors at init.
func rebuildStyles() {
	HeaderStyle = HeaderStyle.Foreground(ColorWhite).Background(ColorBlue)
	TodayCellStyle = TodayCellStyle.BorderForeground(ColorBlue)
	SelectedEntryStyle = SelectedEntryStyle.Foreground(ColorBlue).BorderForeground(ColorBlue)
	DropIndicatorStyle = DropIndicatorStyle.Foreground(ColorGreen)
	IssueKeyStyle = IssueKeyStyle.Foreground(ColorBlue)
	TotalStyle = TotalStyle.Foreground(ColorGreen)
	ToastErrorStyle = ToastErrorStyle.Foreground(ColorRed)
}
