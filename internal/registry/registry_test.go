package registry

import (
	"testing"

	"github.com/vovakirdan/avocash/internal/core"
)

type stubGame struct {
	id   string
	opts Options
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func register(id string) {
	Register(id, func(opts Options) Game { return &stubGame{id: id, opts: opts} })
}

func TestRegisterAndCreate(t *testing.T) {
	register("zz-test")
	register("aa-test")

	if !Exists("zz-test") || Exists("nope") {
		t.Fatal("Exists() disagrees with Register()")
	}

	g, err := Create("zz-test", Options{Difficulty: "hard"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if stub := g.(*stubGame); stub.opts.Difficulty != "hard" {
		t.Errorf("options not passed to the factory: %+v", stub.opts)
	}

	if _, err := Create("nope", Options{}); err == nil {
		t.Error("unknown id should fail")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %v", list)
		}
	}
	if list[0].ID != "aa-test" || list[0].Title != "Stub aa-test" {
		t.Errorf("first entry = %+v", list[0])
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	register("dup-test")
	defer func() {
		if recover() == nil {
			t.Error("second Register() should panic")
		}
	}()
	register("dup-test")
}
