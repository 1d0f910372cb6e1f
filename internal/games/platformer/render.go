package platformer

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// One tile is drawn as cellsPerTile columns by one row, which keeps tiles
// roughly square in a terminal.
const (
	cellsPerTile = 2
	hudRows      = 1
)

// ScreenSize returns the smallest screen, in cells, that fits lvl and the HUD.
func ScreenSize(lvl levels.Level) (w, h int) {
	return lvl.Layout.Cols * cellsPerTile, lvl.Layout.Rows + hudRows
}

// Visual characters for rendering
const (
	PlayerSmallChar  = '▲'
	PlayerBigChar    = '█'
	EnemyChar        = '◆'
	SquashedChar     = '▁'
	BrickChar        = '▓'
	QuestionChar     = '?'
	UsedBlockChar    = '□'
	SolidChar        = '█'
	PipeBodyChar     = '║'
	PipeTopLeftChar  = '╔'
	PipeTopRightChar = '╗'
	MushroomChar     = '♣'
	FlagChar         = '⚑'
	FlagPoleChar     = '│'
)

// viewport maps world pixels to screen cells.
type viewport struct {
	ox, oy int
	tile   float64
}

func (v viewport) cell(x, y float64) (col, row int) {
	col = v.ox + int(math.Round(x/v.tile*cellsPerTile))
	row = v.oy + int(math.Round(y/v.tile))
	return col, row
}

// sprite fills the cells covered by box.
func (v viewport) sprite(dst *core.Screen, box core.Box, r rune, c core.Color) {
	col, row := v.cell(box.X, box.Y)
	w := max(1, int(math.Round(box.W/v.tile*cellsPerTile)))
	h := max(1, int(math.Round(box.H/v.tile)))
	dst.DrawRectColor(core.NewRect(col, row, w, h), r, c)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Level failed to load")
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	v := viewport{
		ox:   (dst.Width() - g.level.Layout.Cols*cellsPerTile) / 2,
		oy:   hudRows,
		tile: g.params.Tile,
	}

	g.renderHUD(dst)
	g.renderFlag(dst, v)
	g.renderBlocks(dst, v)
	g.renderItems(dst, v)
	g.renderEnemies(dst, v)
	g.renderPlayer(dst, v)
	g.renderPopups(dst, v)
	g.renderHelp(dst, v)
	g.renderOverlay(dst)
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	snap := &g.snap

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d  %s", snap.Lives, snap.Player.Size))

	levelText := "Level: " + g.level.ID
	dst.DrawText(dst.Width()-utf8.RuneCountInString(levelText)-1, 0, levelText)
}

func (g *Game) renderFlag(dst *core.Screen, v viewport) {
	if g.snap.Flag == nil {
		return
	}
	col, row := v.cell(g.snap.Flag.X, g.snap.Flag.Y)
	dst.SetColor(col, row, FlagChar, core.ColorBrightGreen)
	dst.SetColor(col+1, row, FlagPoleChar, core.ColorWhite)
}

func (g *Game) renderBlocks(dst *core.Screen, v viewport) {
	for i, b := range g.snap.Blocks {
		col, row := v.cell(b.Box.X, b.Box.Y)
		row += g.fx.bumpOffset(i)

		switch b.Type {
		case world.BlockSolid:
			dst.SetColor(col, row, SolidChar, core.ColorOrange)
			dst.SetColor(col+1, row, SolidChar, core.ColorOrange)
		case world.BlockBrick:
			dst.SetColor(col, row, BrickChar, core.ColorRed)
			dst.SetColor(col+1, row, BrickChar, core.ColorRed)
		case world.BlockQuestion:
			dst.SetColor(col, row, QuestionChar, core.ColorBrightYellow)
			dst.SetColor(col+1, row, QuestionChar, core.ColorBrightYellow)
		case world.BlockPipeTop:
			dst.SetColor(col, row, PipeTopLeftChar, core.ColorGreen)
			dst.SetColor(col+1, row, PipeTopRightChar, core.ColorGreen)
		case world.BlockPipeBottom:
			dst.SetColor(col, row, PipeBodyChar, core.ColorGreen)
			dst.SetColor(col+1, row, PipeBodyChar, core.ColorGreen)
		case world.BlockEmpty:
			// Broken bricks leave nothing; spent question blocks stay visible.
			if b.HitCount > 0 {
				dst.SetColor(col, row, UsedBlockChar, core.ColorGray)
				dst.SetColor(col+1, row, UsedBlockChar, core.ColorGray)
			}
		}
	}
}

func (g *Game) renderItems(dst *core.Screen, v viewport) {
	for _, it := range g.snap.Items {
		if it.State == world.ItemActive {
			v.sprite(dst, it.Box, MushroomChar, core.ColorBrightMagenta)
		}
	}
}

func (g *Game) renderEnemies(dst *core.Screen, v viewport) {
	for _, e := range g.snap.Enemies {
		if e.State == world.EnemyAlive {
			v.sprite(dst, e.Box, EnemyChar, core.ColorYellow)
		}
	}
	for _, s := range g.fx.splats {
		col, row := v.cell(s.x, s.y)
		dst.SetColor(col, row, SquashedChar, core.ColorYellow)
		dst.SetColor(col+1, row, SquashedChar, core.ColorYellow)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	p := g.snap.Player
	if !p.Alive {
		return
	}
	glyph := PlayerSmallChar
	if p.Size == world.SizeBig {
		glyph = PlayerBigChar
	}
	v.sprite(dst, p.Box, glyph, core.ColorBrightRed)
}

func (g *Game) renderPopups(dst *core.Screen, v viewport) {
	for _, p := range g.fx.popups {
		col, row := v.cell(p.x, p.y)
		row += int(math.Round(float64(p.offset)))
		if row < v.oy {
			continue
		}
		dst.DrawTextColor(col, row, p.text, core.ColorBrightWhite)
	}
}

// renderHelp draws the key legend below the level when there is room.
func (g *Game) renderHelp(dst *core.Screen, v viewport) {
	row := v.oy + g.level.Layout.Rows
	if row >= dst.Height() {
		return
	}
	dst.DrawTextColor(v.ox, row, "←/→ move  space jump  p pause  q quit", core.ColorGray)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.snap.Cleared:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to replay", g.snap.Score)
		g.drawCenteredBox(dst, "COURSE CLEAR!", subtitle)

	case g.snap.GameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.snap.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := utf8.RuneCountInString(title)
	subtitleLen := utf8.RuneCountInString(subtitle)

	boxW := max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
