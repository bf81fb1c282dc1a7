package main

import (
	"flag"
	"log"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene2three/internal/config"
	"scene2three/internal/export"
	"scene2three/internal/logx"
)

var (
	colorBg      = rl.NewColor(18, 18, 24, 255)
	colorElement = rl.NewColor(28, 28, 38, 255)
	colorHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent  = rl.NewColor(108, 99, 255, 255)
	colorText    = rl.NewColor(200, 200, 208, 255)
	colorError   = rl.NewColor(230, 90, 90, 255)
)

// Panel holds the two inputs of an export: the destination path typed by
// the user and the status line it reports back to.
type Panel struct {
	cfg      config.Config
	log      *slog.Logger
	htmlPath string
	editing  bool
	status   string
	failed   bool
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file")
	flag.Parse()

	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logx.UserLevel = level

	p := &Panel{
		cfg: cfg,
		log: logx.SetDefaultLogger(),
	}
	if len(flag.Args()) > 0 {
		p.htmlPath = flag.Arg(0)
	}
	p.Run()
}

func (p *Panel) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(560, 170, "Three.js Export")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	initStyle()

	for !rl.WindowShouldClose() {
		p.Draw()
	}
}

func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBg))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (p *Panel) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBg)

	gui.Label(rl.Rectangle{X: 16, Y: 14, Width: 528, Height: 20}, "HTML file path")
	if gui.TextBox(rl.Rectangle{X: 16, Y: 38, Width: 528, Height: 30}, &p.htmlPath, 256, p.editing) {
		p.editing = !p.editing
	}

	if gui.Button(rl.Rectangle{X: 16, Y: 80, Width: 160, Height: 32}, "Export Scene") {
		p.editing = false
		p.export()
	}

	if p.status != "" {
		c := colorText
		if p.failed {
			c = colorError
		}
		rl.DrawText(p.status, 16, 128, 15, c)
	}

	rl.EndDrawing()
}

func (p *Panel) export() {
	_, err := export.Run(p.cfg, p.htmlPath, p.log)
	p.status = export.Status(p.htmlPath, err)
	p.failed = err != nil
	if err != nil {
		p.log.Error("export failed", "err", err)
	}
}
