package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"hexgame/game"
	"hexgame/hex"

	"github.com/charmbracelet/lipgloss"
)

// Stones are drawn as x (red) and o (green). The stone placed last is drawn
// in upper case.
var symbols = [2][2]string{
	game.First:  {"x", "X"},
	game.Second: {"o", "O"},
}

const emptySymbol = "."

type Renderer struct {
	stones [2]lipgloss.Style
	last   lipgloss.Style
	empty  lipgloss.Style
}

// NewRenderer returns a renderer whose colors suit the terminal behind w.
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		stones: [2]lipgloss.Style{
			game.First:  r.NewStyle().Foreground(lipgloss.Color("196")),
			game.Second: r.NewStyle().Foreground(lipgloss.Color("42")),
		},
		last:  r.NewStyle().Bold(true).Underline(true),
		empty: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

var stdout = NewRenderer(os.Stdout)

func Board(state *game.GameState) string {
	return stdout.Board(state)
}

func Result(result game.MoveResult) string {
	return stdout.Result(result)
}

// Board draws one line per row r, shifted right by |r| so that neighboring
// cells line up.
func (r *Renderer) Board(state *game.GameState) string {
	board := state.Board()
	radius := state.Grid().Radius()
	last, moved := state.LastMove()

	var sb strings.Builder
	for row := -radius; row <= radius; row++ {
		sb.WriteString(strings.Repeat(" ", abs(row)))
		for q := max(-radius, -row-radius); q <= min(radius, radius-row); q++ {
			if q > max(-radius, -row-radius) {
				sb.WriteByte(' ')
			}
			c := hex.Cell{Q: q, R: row}
			player, ok := board.Get(c)
			switch {
			case !ok:
				sb.WriteString(r.empty.Render(emptySymbol))
			case moved && c == last:
				sb.WriteString(r.stones[player].Inherit(r.last).Render(symbols[player][1]))
			default:
				sb.WriteString(r.stones[player].Render(symbols[player][0]))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Renderer) Result(result game.MoveResult) string {
	switch result.Status {
	case game.Decided:
		return r.stones[result.Winner].Render(fmt.Sprintf("%s wins", result.Winner))
	case game.Drawn:
		return "draw"
	}
	return "unfinished"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
