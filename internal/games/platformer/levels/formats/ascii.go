// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

var (
	// ErrNoSpawn is returned for a level without a player spawn.
	ErrNoSpawn = errors.New("level has no player spawn")
	// ErrUnknownTile is returned for a tile glyph or kind the parser does not know.
	ErrUnknownTile = errors.New("unknown tile")
)

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Layout   world.Layout
	Metadata map[string]string
}

// ParseTiles builds a layout from an ASCII tile matrix, one string per row.
// Glyphs:
//
//	'.' or ' ' = empty
//	'#' = solid ground
//	'B' = brick
//	'?' = question block holding a coin
//	'M' = question block holding a mushroom
//	'T' = pipe top
//	'P' = pipe body
//	'g' = enemy
//	'@' = player spawn (exactly one)
//	'F' = goal flag (at most one)
func ParseTiles(rows []string) (world.Layout, error) {
	if len(rows) == 0 {
		return world.Layout{}, fmt.Errorf("%w: no rows", world.ErrInvalidLevel)
	}

	cols := len([]rune(rows[0]))
	layout := world.Layout{Cols: cols, Rows: len(rows)}
	spawns := 0

	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			return world.Layout{}, fmt.Errorf("%w: row %d has %d columns, expected %d",
				world.ErrInvalidLevel, row, len(runes), cols)
		}

		for col, ch := range runes {
			cell := world.Cell{Col: col, Row: row}
			switch ch {
			case '.', ' ':
			case '#':
				layout.Blocks = append(layout.Blocks, world.BlockSpec{Cell: cell, Type: world.BlockSolid})
			case 'B':
				layout.Blocks = append(layout.Blocks, world.BlockSpec{Cell: cell, Type: world.BlockBrick})
			case '?':
				layout.Blocks = append(layout.Blocks, world.BlockSpec{Cell: cell, Type: world.BlockQuestion, Content: world.ContentCoin})
			case 'M':
				layout.Blocks = append(layout.Blocks, world.BlockSpec{Cell: cell, Type: world.BlockQuestion, Content: world.ContentMushroom})
			case 'T':
				layout.Blocks = append(layout.Blocks, world.BlockSpec{Cell: cell, Type: world.BlockPipeTop})
			case 'P':
				layout.Blocks = append(layout.Blocks, world.BlockSpec{Cell: cell, Type: world.BlockPipeBottom})
			case 'g':
				layout.Enemies = append(layout.Enemies, cell)
			case '@':
				layout.Spawn = cell
				spawns++
			case 'F':
				if layout.Flag != nil {
					return world.Layout{}, fmt.Errorf("%w: second flag at %v", world.ErrInvalidLevel, cell)
				}
				flag := cell
				layout.Flag = &flag
			default:
				return world.Layout{}, fmt.Errorf("%w %q at row %d col %d", ErrUnknownTile, ch, row, col)
			}
		}
	}

	switch {
	case spawns == 0:
		return world.Layout{}, ErrNoSpawn
	case spawns > 1:
		return world.Layout{}, fmt.Errorf("%w: %d player spawns", world.ErrInvalidLevel, spawns)
	}

	if err := layout.Validate(); err != nil {
		return world.Layout{}, err
	}
	return layout, nil
}

// ParseText parses a plain ASCII level file. Blank lines are ignored and
// the level takes its ID from the caller, usually the file name.
func ParseText(data []byte, id string) (Level, error) {
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}

	layout, err := ParseTiles(rows)
	if err != nil {
		return Level{}, err
	}
	return Level{ID: id, Name: id, Layout: layout}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".tmx", ".txt"}
}
