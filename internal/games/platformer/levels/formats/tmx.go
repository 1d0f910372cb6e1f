package formats

import (
	"bytes"
	"fmt"
	"math"

	"github.com/lafriks/go-tiled"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// Tiled map conventions.
const (
	TMXBlockLayer  = "blocks"
	TMXSpawnGroup  = "spawns"
	TMXFlagKind    = "flag"
	TMXPlayerKind  = "player"
	TMXEnemyKind   = "enemy"
	tmxKindProp    = "kind"
	tmxContentProp = "content"
)

var tmxBlockKinds = map[string]world.BlockType{
	"solid":       world.BlockSolid,
	"brick":       world.BlockBrick,
	"question":    world.BlockQuestion,
	"pipe_top":    world.BlockPipeTop,
	"pipe_bottom": world.BlockPipeBottom,
}

var tmxContents = map[string]world.Content{
	"":         world.ContentNone,
	"coin":     world.ContentCoin,
	"mushroom": world.ContentMushroom,
}

// ParseTMX parses a Tiled map. Tiles of the "blocks" layer take their block
// type from the tileset tile's "kind" property and question contents from
// "content". Objects in the "spawns" group place the player, enemies and the
// flag by their "kind" property. Relative tileset paths resolve against baseDir.
func ParseTMX(data []byte, baseDir, id string) (Level, error) {
	m, err := tiled.LoadReader(baseDir, bytes.NewReader(data))
	if err != nil {
		return Level{}, fmt.Errorf("tmx decode: %w", err)
	}
	return fromTiledMap(m, id)
}

// LoadTMX loads a Tiled map from disk.
func LoadTMX(path, id string) (Level, error) {
	m, err := tiled.LoadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("load TMX %s: %w", path, err)
	}
	return fromTiledMap(m, id)
}

func fromTiledMap(m *tiled.Map, id string) (Level, error) {
	layout := world.Layout{Cols: m.Width, Rows: m.Height}

	blocks := false
	for _, layer := range m.Layers {
		if layer.Name != TMXBlockLayer {
			continue
		}
		if len(layer.Tiles) < m.Width*m.Height {
			return Level{}, fmt.Errorf("%w: %q layer is not a finite %dx%d grid", world.ErrInvalidLevel, TMXBlockLayer, m.Width, m.Height)
		}
		blocks = true
		for row := 0; row < m.Height; row++ {
			for col := 0; col < m.Width; col++ {
				tile := layer.Tiles[row*m.Width+col]
				if tile.IsNil() {
					continue
				}
				block, err := tmxBlock(tile, world.Cell{Col: col, Row: row})
				if err != nil {
					return Level{}, err
				}
				layout.Blocks = append(layout.Blocks, block)
			}
		}
		break
	}
	if !blocks {
		return Level{}, fmt.Errorf("%w: missing %q tile layer", world.ErrInvalidLevel, TMXBlockLayer)
	}

	spawns := 0
	for _, og := range m.ObjectGroups {
		if og.Name != TMXSpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			cell := world.Cell{
				Col: int(math.Floor(o.X / float64(m.TileWidth))),
				Row: int(math.Floor(o.Y / float64(m.TileHeight))),
			}
			switch kind := o.Properties.GetString(tmxKindProp); kind {
			case TMXPlayerKind:
				layout.Spawn = cell
				spawns++
			case TMXEnemyKind:
				layout.Enemies = append(layout.Enemies, cell)
			case TMXFlagKind:
				if layout.Flag != nil {
					return Level{}, fmt.Errorf("%w: second flag object %d at %v", world.ErrInvalidLevel, o.ID, cell)
				}
				flag := cell
				layout.Flag = &flag
			default:
				return Level{}, fmt.Errorf("%w: spawn object %d kind %q", ErrUnknownTile, o.ID, kind)
			}
		}
	}

	switch {
	case spawns == 0:
		return Level{}, ErrNoSpawn
	case spawns > 1:
		return Level{}, fmt.Errorf("%w: %d player spawns", world.ErrInvalidLevel, spawns)
	}
	if err := layout.Validate(); err != nil {
		return Level{}, err
	}

	return Level{ID: id, Name: id, Layout: layout}, nil
}

func tmxBlock(tile *tiled.LayerTile, cell world.Cell) (world.BlockSpec, error) {
	tt, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil {
		return world.BlockSpec{}, fmt.Errorf("%w: tile %d at %v has no properties", ErrUnknownTile, tile.ID, cell)
	}

	kind := tt.Properties.GetString(tmxKindProp)
	typ, ok := tmxBlockKinds[kind]
	if !ok {
		return world.BlockSpec{}, fmt.Errorf("%w: kind %q at %v", ErrUnknownTile, kind, cell)
	}
	content, ok := tmxContents[tt.Properties.GetString(tmxContentProp)]
	if !ok {
		return world.BlockSpec{}, fmt.Errorf("%w: content %q at %v", ErrUnknownTile, tt.Properties.GetString(tmxContentProp), cell)
	}

	return world.BlockSpec{Cell: cell, Type: typ, Content: content}, nil
}
