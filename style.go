package main

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	accentColor            = "#ff9f1c"
	errorColor             = "#e05d5d"
)

const (
	sidebarWidth  = 30
	chartHeight   = 12
	scatterHeight = 16
)

var (
	appstyle = lipgloss.NewStyle().Margin(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColor))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(rowSelectedTextFGColor))
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(rowTextFGColor))

	rowSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(rowSelectedBGColor)).
				Foreground(lipgloss.Color(rowSelectedTextFGColor))

	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)
	sidebarLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0a0"))
	sidebarValue = lipgloss.NewStyle().Foreground(lipgloss.Color(rowSelectedTextFGColor))

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#a0a0a0"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(accentColor))
	focusedGroupStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColor))
	groupStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(errorColor))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)
