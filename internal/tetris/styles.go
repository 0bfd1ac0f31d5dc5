package tetris

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/herbhall/cli-tetris/internal/playfield"
	"github.com/herbhall/cli-tetris/internal/shapes"
)

// cellStyle returns the style for a single occupied cell: shape color for
// a Normal tile, a dimmed outline for Ghost, and a neutral gray for
// Garbage (spec.md §6's shape color contract).
func cellStyle(t playfield.Tile) lipgloss.Style {
	base := lipgloss.NewStyle()
	if t.Garbage {
		return base.Foreground(rgb(shapes.GarbageColor()))
	}
	if t.Variant == playfield.Ghost {
		return base.Foreground(lipgloss.Color("240"))
	}
	return base.Foreground(rgb(t.Shape.Color()))
}

func rgb(c shapes.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#DCFFDC"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DCFFDC"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	pauseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#DCFFDC"))
)
