package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type stubGame struct {
	id, title string
	resets    int
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return core.GameState{} }

func (g *stubGame) Step(time.Duration, core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func stub(id, title string) Factory {
	return func() Game { return &stubGame{id: id, title: title} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test:create", stub("test:create", "Create"))

	if !Exists("test:create") {
		t.Fatal("Exists() = false after Register")
	}

	g, err := Create("test:create")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Create" {
		t.Errorf("Title() = %q, expected Create", g.Title())
	}

	// Each call builds a fresh instance
	other, _ := Create("test:create")
	if g == other {
		t.Error("Create() returned the same instance twice")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test:dup", stub("test:dup", "Dup"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate Register")
		}
	}()
	Register("test:dup", stub("test:dup", "Dup again"))
}

func TestReplaceOverridesTitle(t *testing.T) {
	Register("test:replace", stub("test:replace", "Built-in"))
	Replace("test:replace", stub("test:replace", "From disk"))
	Replace("test:fresh", stub("test:fresh", "Fresh"))

	for _, info := range ListPrefix("test:") {
		if info.ID == "test:replace" && info.Title != "From disk" {
			t.Errorf("title after Replace = %q", info.Title)
		}
	}
	if !Exists("test:fresh") {
		t.Error("Replace() should register unknown IDs")
	}
}

func TestListPrefixSorted(t *testing.T) {
	Register("zz:b", stub("zz:b", "B"))
	Register("zz:a", stub("zz:a", "A"))
	Register("zy:c", stub("zy:c", "C"))

	got := ListPrefix("zz:")
	if len(got) != 2 || got[0].ID != "zz:a" || got[1].ID != "zz:b" {
		t.Errorf("ListPrefix(zz:) = %+v", got)
	}

	all := List()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("List() not sorted at %d: %s >= %s", i, all[i-1].ID, all[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("test:missing")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
}
