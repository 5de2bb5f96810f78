package main

import (
	"fmt"
	"math"

	"fishing-game/game"
	"fishing-game/models"

	"github.com/gdamore/tcell/v2"
)

const rowHeight = 20.0 // world units per terminal row

var (
	skyStyle     = tcell.StyleDefault
	waterStyle   = tcell.StyleDefault.Background(tcell.ColorNavy)
	surfaceStyle = waterStyle.Foreground(tcell.ColorLightCyan)
	lineStyle    = waterStyle.Foreground(tcell.ColorSilver)
	hookStyle    = waterStyle.Foreground(tcell.ColorWhite).Bold(true)
	hudStyle     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLightCyan)
	boxStyle     = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
)

var tierColors = [...]tcell.Color{
	game.TierWhite:  tcell.ColorWhite,
	game.TierBlue:   tcell.ColorDodgerBlue,
	game.TierRed:    tcell.ColorRed,
	game.TierGolden: tcell.ColorGold,
}

// viewport maps world coordinates to terminal cells. The camera follows the
// hook, keeping it a little above the middle of the field.
type viewport struct {
	cols, rows int
	scaleX     float64
	top        float64
}

func newViewport(s *game.State, cols, rows int) viewport {
	v := viewport{cols: cols, rows: rows}
	if cols > 0 {
		v.scaleX = s.Width / float64(cols)
	}
	v.top = s.HookY - 0.48*float64(v.fieldRows())*rowHeight
	return v
}

// fieldRows excludes the HUD line at the bottom.
func (v viewport) fieldRows() int {
	return max(v.rows-1, 0)
}

func (v viewport) col(x float64) int {
	if v.scaleX == 0 {
		return 0
	}
	return int(x / v.scaleX)
}

func (v viewport) row(y float64) int {
	return int(math.Floor((y - v.top) / rowHeight))
}

// worldX is the world x at the centre of a terminal column.
func (v viewport) worldX(col int) float64 {
	return (float64(col) + 0.5) * v.scaleX
}

func render(screen tcell.Screen, v viewport, loop *game.Loop, board []models.Score, showBoard bool) {
	screen.Clear()
	s := loop.State()
	field := v.fieldRows()

	put := func(x, y int, r rune, style tcell.Style) {
		if x >= 0 && x < v.cols && y >= 0 && y < field {
			screen.SetContent(x, y, r, nil, style)
		}
	}

	surface := v.row(game.WaterTopY)
	for y := 0; y < field; y++ {
		style := waterStyle
		if y < surface {
			style = skyStyle
		}
		for x := 0; x < v.cols; x++ {
			r := ' '
			if y == surface {
				r, style = '~', surfaceStyle
			}
			put(x, y, r, style)
		}
	}

	hookCol, hookRow := v.col(s.HookX), v.row(s.HookY)
	for y := max(surface+1, 0); y < hookRow; y++ {
		put(hookCol, y, '│', lineStyle)
	}

	for _, f := range s.Fish {
		if f.Caught {
			continue
		}
		put(v.col(f.X), v.row(f.Y), fishRune(f), waterStyle.Foreground(tierColor(f.Tier)))
	}
	for i, f := range s.Collected {
		put(hookCol, hookRow-1-i, '§', waterStyle.Foreground(tierColor(f.Tier)))
	}
	put(hookCol, hookRow, 'J', hookStyle)

	drawText(screen, 0, v.rows-1, v.cols, hudStyle, hudLine(loop))

	if loop.Over() {
		drawBox(screen, v.cols, field, resultLines(loop.Results()))
	}
	if showBoard {
		drawBox(screen, v.cols, field, boardLines(board))
	}
}

func fishRune(f *game.Fish) rune {
	if f.VX < 0 {
		return '<'
	}
	return '>'
}

func tierColor(t game.Tier) tcell.Color {
	if int(t) < len(tierColors) {
		return tierColors[t]
	}
	return tcell.ColorWhite
}

func hudLine(loop *game.Loop) string {
	s := loop.State()
	hint := "space/click: drop"
	switch {
	case loop.Over():
		hint = "r: try again"
	case s.Phase != game.PhaseIdle:
		hint = "←/→ or drag: steer"
	}
	return fmt.Sprintf(" %s  Score %d  Top %d  Depth %.0f/%.0f  %s  l: leaderboard  q: quit",
		loop.Player(), s.Score, loop.TopScore(), s.Depth(), game.MaxDepth, hint)
}

func resultLines(res game.Results) []string {
	lines := []string{"Round over", fmt.Sprintf("%s scored %d pts", res.Player, res.Score)}
	if res.NewTop {
		lines = append(lines, "New top score!")
	}
	lines = append(lines, "")
	for _, c := range res.Catches {
		lines = append(lines, fmt.Sprintf("%-6s Shrimp  %d × %d pts = %d pts", c.Tier.Info().Name, c.Count, c.Value, c.Total))
	}
	if len(res.Catches) == 0 {
		lines = append(lines, "Nothing caught this time")
	}
	return append(lines, "", "r: try again")
}

func boardLines(board []models.Score) []string {
	lines := []string{"Leaderboard", ""}
	if len(board) == 0 {
		return append(lines, "No scores yet!", "Be the first to set a record!")
	}
	for i, e := range board {
		lines = append(lines, fmt.Sprintf("%d. %-16s %6d pts", i+1, e.Name, e.Score))
	}
	return lines
}

func drawText(screen tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	for _, r := range text {
		if x >= maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// drawBox centres lines in a filled box over the play field.
func drawBox(screen tcell.Screen, cols, rows int, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2
	x0 := max((cols-width)/2, 0)
	y0 := max((rows-height)/2, 0)

	for y := y0; y < y0+height && y < rows; y++ {
		for x := x0; x < x0+width && x < cols; x++ {
			screen.SetContent(x, y, ' ', nil, boxStyle)
		}
	}
	for i, l := range lines {
		if y := y0 + 1 + i; y < rows {
			drawText(screen, x0+2, y, cols, boxStyle, l)
		}
	}
}
