package world

import "github.com/vovakirdan/tui-platformer/internal/core"

// BlockType is the closed set of tile kinds.
type BlockType int

const (
	BlockSolid BlockType = iota
	BlockBrick
	BlockQuestion
	BlockEmpty
	BlockPipeTop
	BlockPipeBottom
)

func (t BlockType) String() string {
	switch t {
	case BlockSolid:
		return "solid"
	case BlockBrick:
		return "brick"
	case BlockQuestion:
		return "question"
	case BlockEmpty:
		return "empty"
	case BlockPipeTop:
		return "pipe_top"
	case BlockPipeBottom:
		return "pipe_bottom"
	default:
		return "unknown"
	}
}

// Content is what a question block releases.
type Content int

const (
	ContentNone Content = iota
	ContentCoin
	ContentMushroom
)

func (c Content) String() string {
	switch c {
	case ContentCoin:
		return "coin"
	case ContentMushroom:
		return "mushroom"
	default:
		return "none"
	}
}

// SpawnKind tells the step what a block activation produced.
type SpawnKind int

const (
	SpawnCoin SpawnKind = iota
	SpawnMushroom
)

// Spawn is the descriptor returned by an activated question block.
// For a mushroom, (X, Y) is where the item appears: one tile above the block.
type Spawn struct {
	Kind SpawnKind
	X, Y float64
}

// Block is one tile of level geometry. Blocks are never removed; a used
// or broken block turns Empty and stops being solid.
type Block struct {
	X, Y     float64
	Size     float64
	Type     BlockType
	Content  Content
	HitCount int
}

// NewBlock creates a block. Question blocks without content hold a coin.
func NewBlock(x, y, size float64, t BlockType, c Content) Block {
	if t == BlockQuestion && c == ContentNone {
		c = ContentCoin
	}
	if t != BlockQuestion {
		c = ContentNone
	}
	return Block{X: x, Y: y, Size: size, Type: t, Content: c}
}

// Box returns the block's bounds.
func (b *Block) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.Size, b.Size)
}

// IsSolid reports whether the block takes part in collision.
func (b *Block) IsSolid() bool {
	return b.Type != BlockEmpty
}

// Hit applies a strike from below by an actor of the given size. It returns
// a spawn descriptor when a question block activates.
func (b *Block) Hit(actor Size) (Spawn, bool) {
	switch b.Type {
	case BlockBrick:
		if actor == SizeBig {
			b.Type = BlockEmpty
		}
		return Spawn{}, false

	case BlockQuestion:
		if b.HitCount > 0 {
			return Spawn{}, false
		}
		b.HitCount = 1
		b.Type = BlockEmpty
		if b.Content == ContentMushroom {
			return Spawn{Kind: SpawnMushroom, X: b.X, Y: b.Y - b.Size}, true
		}
		return Spawn{Kind: SpawnCoin, X: b.X, Y: b.Y}, true

	default:
		// Solid, pipes and empty blocks do not react.
		return Spawn{}, false
	}
}

// blockSet adapts the block slice to physics.Obstacles; indices are block indices.
type blockSet []Block

func (s blockSet) Len() int           { return len(s) }
func (s blockSet) Box(i int) core.Box { return s[i].Box() }
func (s blockSet) Solid(i int) bool   { return s[i].IsSolid() }

// overlapping returns the index of the first solid block box intersects,
// or -1 if it is clear.
func (s blockSet) overlapping(box core.Box) int {
	for i := range s {
		if s[i].IsSolid() && box.Intersects(s[i].Box()) {
			return i
		}
	}
	return -1
}
