package threejs

import (
	"errors"
	"io"
	"log/slog"

	"scene2three/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// fakeExporter records export calls without touching the filesystem.
type fakeExporter struct {
	calls map[string]int
	paths []string
	fail  map[string]error
}

func newFakeExporter() *fakeExporter {
	return &fakeExporter{calls: make(map[string]int), fail: make(map[string]error)}
}

func (f *fakeExporter) Export(inst *engine.MeshInstance, path string) error {
	f.calls[inst.MeshData]++
	f.paths = append(f.paths, path)
	return f.fail[inst.MeshData]
}

var errBoom = errors.New("boom")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func object(sc *engine.Scene, name string, typ engine.ObjectType, pos rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Type = typ
	g.Transform.Position = pos
	if sc != nil {
		sc.AddGameObject(g)
	}
	return g
}

func meshInstance(sc *engine.Scene, name, meshData string) *engine.MeshInstance {
	inst := &engine.MeshInstance{
		Name:     name,
		MeshData: meshData,
		Object:   object(sc, name, engine.ObjectMesh, rl.Vector3{}),
	}
	sc.Instances = append(sc.Instances, inst)
	return inst
}

func newTestAssembler(exp MeshExporter) *Assembler {
	return NewAssembler(Options{Root: "/out", Logger: quietLogger()}, exp)
}
