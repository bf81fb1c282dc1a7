package export

import (
	"log/slog"

	"scene2three/internal/config"
	"scene2three/internal/world"
)

// Run loads the scene file named by cfg and exports it to htmlPath. It is
// the single trigger shared by the command line and the panel.
func Run(cfg config.Config, htmlPath string, log *slog.Logger) (*Result, error) {
	w, err := world.Load(cfg.ScenePath)
	if err != nil {
		return nil, err
	}
	return NewOperator(cfg, log).Export(w, htmlPath)
}
