package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="3">
 <tileset firstgid="1" name="blocks" tilewidth="16" tileheight="16" tilecount="3" columns="3">
  <tile id="0">
   <properties>
    <property name="kind" value="solid"/>
   </properties>
  </tile>
  <tile id="1">
   <properties>
    <property name="kind" value="question"/>
    <property name="content" value="mushroom"/>
   </properties>
  </tile>
  <tile id="2">
   <properties>
    <property name="kind" value="brick"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="blocks" width="4" height="3">
  <data encoding="csv">
0,2,3,0,
0,0,0,0,
1,1,1,1
</data>
 </layer>
 <objectgroup id="2" name="spawns">
  <object id="1" x="0" y="16">
   <properties>
    <property name="kind" value="player"/>
   </properties>
   <point/>
  </object>
  <object id="2" x="48" y="16">
   <properties>
    <property name="kind" value="enemy"/>
   </properties>
   <point/>
  </object>
 </objectgroup>
</map>
`

func TestParseTMX(t *testing.T) {
	lvl, err := ParseTMX([]byte(testTMX), ".", "tiled")
	if err != nil {
		t.Fatalf("ParseTMX() error = %v", err)
	}

	layout := lvl.Layout
	if layout.Cols != 4 || layout.Rows != 3 {
		t.Errorf("dimensions = %dx%d, expected 4x3", layout.Cols, layout.Rows)
	}
	if layout.Spawn != (world.Cell{Col: 0, Row: 1}) {
		t.Errorf("Spawn = %v, expected {0 1}", layout.Spawn)
	}
	if len(layout.Enemies) != 1 || layout.Enemies[0] != (world.Cell{Col: 3, Row: 1}) {
		t.Errorf("Enemies = %v, expected [{3 1}]", layout.Enemies)
	}
	if len(layout.Blocks) != 6 {
		t.Fatalf("len(Blocks) = %d, expected 6", len(layout.Blocks))
	}

	mushroom := world.BlockSpec{Cell: world.Cell{Col: 1, Row: 0}, Type: world.BlockQuestion, Content: world.ContentMushroom}
	if layout.Blocks[0] != mushroom {
		t.Errorf("Blocks[0] = %+v, expected %+v", layout.Blocks[0], mushroom)
	}
	if layout.Blocks[1].Type != world.BlockBrick {
		t.Errorf("Blocks[1].Type = %v, expected Brick", layout.Blocks[1].Type)
	}
	for _, b := range layout.Blocks[2:] {
		if b.Type != world.BlockSolid || b.Row != 2 {
			t.Errorf("ground block = %+v, expected solid on row 2", b)
		}
	}
}

func TestLoadTMX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.tmx")
	if err := os.WriteFile(path, []byte(testTMX), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := LoadTMX(path, "map")
	if err != nil {
		t.Fatalf("LoadTMX() error = %v", err)
	}
	if lvl.ID != "map" {
		t.Errorf("ID = %q, expected map", lvl.ID)
	}
}

func TestParseTMXRejectsUnknownSpawnKind(t *testing.T) {
	data := []byte(strings.Replace(testTMX, `value="enemy"`, `value="dragon"`, 1))

	_, err := ParseTMX(data, ".", "bad")
	if !errors.Is(err, ErrUnknownTile) {
		t.Errorf("ParseTMX() error = %v, expected ErrUnknownTile", err)
	}
}

func TestParseTMXRequiresPlayer(t *testing.T) {
	data := []byte(strings.Replace(testTMX, `value="player"`, `value="enemy"`, 1))

	_, err := ParseTMX(data, ".", "bad")
	if !errors.Is(err, ErrNoSpawn) {
		t.Errorf("ParseTMX() error = %v, expected ErrNoSpawn", err)
	}
}

func TestParseTMXRejectsSecondFlag(t *testing.T) {
	flags := strings.Replace(testTMX, `value="enemy"`, `value="flag"`, 1)
	flags = strings.Replace(flags, ` </objectgroup>`, `  <object id="3" x="32" y="16">
   <properties>
    <property name="kind" value="flag"/>
   </properties>
   <point/>
  </object>
 </objectgroup>`, 1)

	_, err := ParseTMX([]byte(flags), ".", "bad")
	if !errors.Is(err, world.ErrInvalidLevel) {
		t.Errorf("ParseTMX() error = %v, expected ErrInvalidLevel", err)
	}

	one := strings.Replace(testTMX, `value="enemy"`, `value="flag"`, 1)
	lvl, err := ParseTMX([]byte(one), ".", "ok")
	if err != nil {
		t.Fatalf("ParseTMX() with one flag error = %v", err)
	}
	if lvl.Layout.Flag == nil || *lvl.Layout.Flag != (world.Cell{Col: 3, Row: 1}) {
		t.Errorf("Flag = %v, expected {3 1}", lvl.Layout.Flag)
	}
}
