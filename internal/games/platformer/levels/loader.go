package levels

import (
	"cmp"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
)

// SkippedFile is a level file LoadAll could not use.
type SkippedFile struct {
	Path string
	Err  error
}

// Loader reads level files from a directory tree.
type Loader struct {
	Root string

	// Skipped lists the files the last LoadAll rejected.
	Skipped []SkippedFile
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll walks Root and parses every file with a level extension.
// Files that fail to parse are recorded in Skipped; only walk errors are
// returned. Levels come back sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	l.Skipped = nil
	var found []Level

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(formats.FormatExtensions(), strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			l.Skipped = append(l.Skipped, SkippedFile{Path: path, Err: err})
			return nil
		}
		found = append(found, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	slices.SortFunc(found, func(a, b Level) int {
		return strings.Compare(a.ID, b.ID)
	})
	return found, nil
}

// LoadFile loads a single level file. Levels without an explicit ID or
// name are named after the file.
func (l *Loader) LoadFile(path string) (Level, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	parsed, err := parseFile(path, stem)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	lvl := Level{
		ID:       cmp.Or(parsed.ID, stem),
		Name:     parsed.Name,
		Layout:   parsed.Layout,
		Metadata: parsed.Metadata,
		FilePath: path,
	}
	lvl.Name = cmp.Or(lvl.Name, lvl.ID)
	return lvl, nil
}

// parseFile routes a file to the parser for its extension. Tiled maps are
// loaded by path so their external tilesets resolve.
func parseFile(path, stem string) (formats.Level, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".tmx" {
		return formats.LoadTMX(path, stem)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formats.Level{}, err
	}

	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt":
		return formats.ParseText(data, stem)
	}
	return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
}
