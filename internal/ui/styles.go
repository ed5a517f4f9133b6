package ui

import "github.com/charmbracelet/lipgloss"

// styles are bound to the renderer of the output they are written to, so
// a non-terminal writer gets plain text.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	label   lipgloss.Style
	summary lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("244")),
		label:   r.NewStyle().Bold(true),
		summary: r.NewStyle().Foreground(lipgloss.Color("39")),
	}
}
