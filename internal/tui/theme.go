package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	border      lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	rowEven     lipgloss.Style
	rowOdd      lipgloss.Style
	rowSelected lipgloss.Style
	rowSeen     lipgloss.Style
	head        lipgloss.Style
	footer      lipgloss.Style
	notice      lipgloss.Style
	noticeErr   lipgloss.Style
	placeholder lipgloss.Style
}

func defaultTheme() Theme {
	b := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Theme{
		border:      b.BorderForeground(lipgloss.Color("63")),
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		label:       lipgloss.NewStyle().Faint(true),
		rowEven:     lipgloss.NewStyle(),
		rowOdd:      lipgloss.NewStyle().Faint(true),
		rowSelected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219")),
		rowSeen:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		head:        lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		footer:      lipgloss.NewStyle().Faint(true),
		notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		noticeErr:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		placeholder: lipgloss.NewStyle().Faint(true),
	}
}
