package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lexcodex/outlinify/outline"
)

var (
	colorPrimary   = lipgloss.Color("39")
	colorSecondary = lipgloss.Color("86")
	colorConst     = lipgloss.Color("220")
	colorMember    = lipgloss.Color("42")
	colorDim       = lipgloss.Color("241")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	modifierStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	positionStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// kindStyles colors outline entries by kind.
var kindStyles = map[outline.Kind]lipgloss.Style{
	outline.KindFunction:  lipgloss.NewStyle().Foreground(colorSecondary),
	outline.KindClass:     lipgloss.NewStyle().Foreground(colorPrimary),
	outline.KindMethod:    lipgloss.NewStyle().Foreground(colorMember),
	outline.KindProperty:  lipgloss.NewStyle().Foreground(colorMember),
	outline.KindConst:     lipgloss.NewStyle().Foreground(colorConst),
	outline.KindEnum:      lipgloss.NewStyle().Foreground(colorPrimary),
	outline.KindInterface: lipgloss.NewStyle().Foreground(colorPrimary),
	outline.KindTrait:     lipgloss.NewStyle().Foreground(colorPrimary),
	outline.KindTypeconst: lipgloss.NewStyle().Foreground(colorConst),
}
