package export

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene2three/internal/config"
	"scene2three/internal/engine"
	"scene2three/internal/world"
)

func newTestOperator() *Operator {
	return NewOperator(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func loadRoom(t *testing.T) *world.World {
	t.Helper()
	w, err := world.Load("../world/testdata/room.json")
	require.NoError(t, err)
	return w
}

type panicHost struct {
	sc *engine.Scene
}

func (h *panicHost) Scene() *engine.Scene { return h.sc }

func (h *panicHost) Export(inst *engine.MeshInstance, path string) error {
	panic("exporter exploded")
}

func TestExportEndToEnd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	htmlPath := filepath.Join(dir, "index.html")

	res, err := newTestOperator().Export(loadRoom(t), htmlPath)
	require.NoError(t, err)

	assert.Equal(t, htmlPath, res.HTMLPath)
	assert.Equal(t, filepath.Join(dir, "script.js"), res.ScriptPath)
	assert.Equal(t, filepath.Join(dir, "three.js"), res.LibraryPath)

	script, err := os.ReadFile(res.ScriptPath)
	require.NoError(t, err)
	library, err := os.ReadFile(res.LibraryPath)
	require.NoError(t, err)
	assert.Equal(t, script, library)
	assert.Contains(t, string(script), `loader.load("exported_gltfs/Chair.glb",`)
	assert.Contains(t, string(script), "const Chair_001 = Chair.clone();")

	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), `src="script.js"`)

	assert.Equal(t, []string{filepath.Join(dir, "exported_gltfs", "Chair.glb")}, res.Assets)
	assert.FileExists(t, res.Assets[0])

	// Orphan camera and the sun lamp.
	assert.Len(t, res.Diagnostics, 2)
	assert.Equal(t, "Successfully exported to: "+htmlPath, Status(htmlPath, nil))
}

func TestExportIsDeterministic(t *testing.T) {
	op := newTestOperator()
	first, err := op.Export(loadRoom(t), filepath.Join(t.TempDir(), "index.html"))
	require.NoError(t, err)
	second, err := op.Export(loadRoom(t), filepath.Join(t.TempDir(), "index.html"))
	require.NoError(t, err)

	a, err := os.ReadFile(first.ScriptPath)
	require.NoError(t, err)
	b, err := os.ReadFile(second.ScriptPath)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestExportNoDestination(t *testing.T) {
	_, err := newTestOperator().Export(loadRoom(t), "  ")
	assert.ErrorIs(t, err, ErrNoDestination)
	assert.Equal(t, "ERROR: no HTML file path specified", Status("", err))
}

func TestExportCannotCreateDirectory(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := newTestOperator().Export(loadRoom(t), filepath.Join(blocker, "index.html"))
	assert.ErrorIs(t, err, ErrCreateDirectory)
	assert.Contains(t, Status("", err), "ERROR: could not create directory: "+blocker)
}

func TestExportWithoutPage(t *testing.T) {
	op := newTestOperator()
	op.Config.WriteHTML = false
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "index.html")

	res, err := op.Export(loadRoom(t), htmlPath)
	require.NoError(t, err)
	assert.Empty(t, res.HTMLPath)
	assert.NoFileExists(t, htmlPath)
	assert.FileExists(t, res.ScriptPath)
}

func TestExportRecoversPanic(t *testing.T) {
	sc := engine.NewScene("s")
	g := engine.NewGameObject("Cube")
	g.Type = engine.ObjectMesh
	require.NoError(t, sc.AddGameObject(g))
	sc.Instances = append(sc.Instances, &engine.MeshInstance{Name: "Cube", MeshData: "CubeMesh", Object: g})

	dir := t.TempDir()
	res, err := newTestOperator().Export(&panicHost{sc: sc}, filepath.Join(dir, "index.html"))
	assert.Nil(t, res)
	assert.ErrorContains(t, err, "exporter exploded")
	assert.NoFileExists(t, filepath.Join(dir, "script.js"))
}

func TestExportWriteFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the script makes the final rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "script.js"), 0755))

	res, err := newTestOperator().Export(loadRoom(t), filepath.Join(dir, "index.html"))
	assert.Nil(t, res)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "three.js"))
	assert.NoFileExists(t, filepath.Join(dir, "index.html"))
	assert.NoFileExists(t, filepath.Join(dir, "exported_gltfs", "Chair.glb"))
}
