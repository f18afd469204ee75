package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexcodex/outlinify/outline"
)

// View composes the header, the scrollable tree, and a status bar.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(fmt.Sprintf("Outline: %s", m.path))
	status := statusStyle.Render("j/k scroll | g/G top/bottom | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.view.View(), status)
}

func (m Model) renderTree() string {
	if len(m.defs) == 0 {
		return statusStyle.Render("No declarations found.")
	}
	var b strings.Builder
	for _, d := range m.defs {
		renderDef(&b, d, 0)
	}
	return b.String()
}

func renderDef(b *strings.Builder, d outline.Def, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + kindStyles[d.Kind].Render(d.Kind.String()) + " " + nameStyle.Render(d.Name)
	if len(d.Modifiers) > 0 {
		labels := make([]string, 0, len(d.Modifiers))
		for _, mod := range d.Modifiers {
			labels = append(labels, mod.String())
		}
		line += " " + modifierStyle.Render(strings.Join(labels, " "))
	}
	line += " " + positionStyle.Render(d.Pos.String())
	b.WriteString(line + "\n")
	for _, child := range d.Children {
		renderDef(b, child, depth+1)
	}
}
