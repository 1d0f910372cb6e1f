// Package levels provides the built-in platformer levels and loads custom
// ones from disk. This package depends on world but world does not depend
// on levels.
package levels

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

var (
	// ErrNoSpawn is returned for a level without a player spawn.
	ErrNoSpawn = formats.ErrNoSpawn
	// ErrUnknownTile is returned for an unrecognized tile glyph or kind.
	ErrUnknownTile = formats.ErrUnknownTile
	// ErrNotFound is returned when no level has the requested ID.
	ErrNotFound = errors.New("level not found")
)

// DefaultID is the level played when none is chosen.
const DefaultID = "1-1"

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Layout   world.Layout
	Metadata map[string]string
	FilePath string // empty for built-in levels
}

// NewWorld builds a fresh simulation of the level.
func (l *Level) NewWorld(p world.Params) (*world.World, error) {
	w, err := world.New(l.Layout, p)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return w, nil
}

// Builtin reports whether the level ships with the binary.
func (l *Level) Builtin() bool {
	return l.FilePath == ""
}

// Parse creates a level from an ASCII tile matrix (see formats.ParseTiles).
func Parse(id, name string, rows []string) (Level, error) {
	layout, err := formats.ParseTiles(rows)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", id, err)
	}
	return Level{ID: id, Name: name, Layout: layout}, nil
}

func mustParse(id, name string, rows []string) Level {
	lvl, err := Parse(id, name, rows)
	if err != nil {
		panic(err)
	}
	return lvl
}

// BuiltinLevels returns all built-in levels in play order.
func BuiltinLevels() []Level {
	return []Level{
		// Level 1-1: a single flat screen with one goomba
		mustParse("1-1", "Flatlands", []string{
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"...@........g..F",
			"################",
		}),

		// Level 1-2: brick row with question blocks, a pipe and two goombas
		mustParse("1-2", "Pipeworks", []string{
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"....B?B?B.......",
			"................",
			"................",
			"...........T....",
			".@....g....P.g.F",
			"################",
		}),

		// Level 1-3: pits and a mushroom block
		mustParse("1-3", "Gaps", []string{
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			"................",
			".......BMB......",
			"................",
			"................",
			"................",
			".@...........g.F",
			"#####..####..###",
		}),
	}
}

// FindBuiltin returns the built-in level with the given ID.
func FindBuiltin(id string) (Level, error) {
	for _, lvl := range BuiltinLevels() {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Available returns the built-in levels followed by the levels found under
// dir. A file level replaces the built-in level with the same ID. An empty
// dir yields the built-ins only.
func Available(dir string) ([]Level, error) {
	if dir == "" {
		return BuiltinLevels(), nil
	}
	custom, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	return Merge(BuiltinLevels(), custom), nil
}

// Merge appends extra to base in order, replacing base levels that share
// an ID in place.
func Merge(base, extra []Level) []Level {
	all := slices.Clone(base)
	index := make(map[string]int, len(all))
	for i, lvl := range all {
		index[lvl.ID] = i
	}
	for _, lvl := range extra {
		if i, ok := index[lvl.ID]; ok {
			all[i] = lvl
			continue
		}
		index[lvl.ID] = len(all)
		all = append(all, lvl)
	}
	return all
}

// Find returns the level with the given ID from Available(dir).
func Find(dir, id string) (Level, error) {
	if dir == "" {
		return FindBuiltin(id)
	}
	all, err := Available(dir)
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
