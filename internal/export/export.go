// Package export runs one scene-to-three.js export: it validates the
// destination, prepares directories, assembles the program and writes
// every output file.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"scene2three/internal/config"
	"scene2three/internal/threejs"
)

var (
	ErrNoDestination   = errors.New("no HTML file path specified")
	ErrCreateDirectory = errors.New("could not create directory")
)

// Host is the authoring environment an export reads from.
type Host interface {
	threejs.Source
	threejs.MeshExporter
}

// Result lists what a successful run wrote.
type Result struct {
	HTMLPath    string // empty when no page was written
	ScriptPath  string
	LibraryPath string
	Assets      []string
	Diagnostics []threejs.Diagnostic
}

type Operator struct {
	Config config.Config
	Log    *slog.Logger
}

func NewOperator(cfg config.Config, log *slog.Logger) *Operator {
	if log == nil {
		log = slog.Default()
	}
	return &Operator{Config: cfg, Log: log}
}

// Export writes the program for host next to htmlPath. Per-entity
// problems end up in Result.Diagnostics; any other failure aborts the run
// without leaving generated files behind.
func (o *Operator) Export(host Host, htmlPath string) (res *Result, err error) {
	var asm *threejs.Assembler
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("export panicked: %v", r)
		}
		if err != nil && asm != nil {
			for _, p := range asm.Registry().Written() {
				os.Remove(p)
			}
		}
	}()

	htmlPath = strings.TrimSpace(htmlPath)
	if htmlPath == "" {
		return nil, ErrNoDestination
	}
	htmlPath, err = homedir.Expand(htmlPath)
	if err != nil {
		return nil, err
	}

	cfg := o.Config
	dir := filepath.Dir(htmlPath)
	for _, d := range []string{dir, filepath.Join(dir, cfg.AssetDirName)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCreateDirectory, d, err)
		}
	}

	sc := host.Scene()
	if sc == nil {
		return nil, errors.New("host has no scene")
	}
	o.Log.Debug("exporting", "scene", sc.Name, "dest", htmlPath)

	asm = threejs.NewAssembler(threejs.Options{
		CDN:          cfg.CDN,
		ThreeVersion: cfg.ThreeVersion,
		Root:         dir,
		AssetDirName: cfg.AssetDirName,
		Logger:       o.Log,
	}, host)
	out, err := asm.Assemble(sc)
	if err != nil {
		return nil, err
	}

	res = &Result{
		ScriptPath:  filepath.Join(dir, cfg.ScriptName),
		LibraryPath: filepath.Join(dir, cfg.LibraryName),
		Assets:      out.Assets,
		Diagnostics: out.Diagnostics,
	}
	script := []byte(out.Script)
	files := []threejs.File{
		{Path: res.ScriptPath, Data: script},
		{Path: res.LibraryPath, Data: script},
	}
	if cfg.WriteHTML {
		res.HTMLPath = htmlPath
		if htmlPath == res.ScriptPath || htmlPath == res.LibraryPath {
			return nil, fmt.Errorf("HTML path %s collides with a generated script", htmlPath)
		}
		page := threejs.Page(cfg.PageTitle, cfg.ScriptName)
		files = append(files, threejs.File{Path: htmlPath, Data: []byte(page)})
	}

	if err := threejs.WriteFiles(files); err != nil {
		return nil, err
	}

	o.Log.Info("export finished",
		"script", res.ScriptPath,
		"assets", len(res.Assets),
		"skipped", len(res.Diagnostics))
	return res, nil
}

// Status is the one-line summary shown to the user.
func Status(htmlPath string, err error) string {
	if err != nil {
		return "ERROR: " + err.Error()
	}
	return "Successfully exported to: " + htmlPath
}
