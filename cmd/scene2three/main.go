package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"scene2three/internal/config"
	"scene2three/internal/export"
	"scene2three/internal/logx"
)

type app struct {
	configPath string
	verbose    int
	quiet      bool

	cfg config.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "scene2three",
		Short:         "Convert a 3D scene file into a three.js program",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file")
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "more output (-vv for debug)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only print errors")

	root.AddCommand(newExportCmd(a), newWatchCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose > 0 || a.quiet {
		level = logx.LevelFromFlags(a.verbose > 1, a.verbose == 1, a.quiet)
	}
	logx.UserLevel = level
	a.log = slog.New(logx.NewHandler(cmd.ErrOrStderr(), level))
	slog.SetDefault(a.log)
	return nil
}

// exportOnce runs one export and prints its status line and written
// paths.
func (a *app) exportOnce(cmd *cobra.Command, htmlPath string) error {
	res, err := export.Run(a.cfg, htmlPath, a.log)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, export.Status(htmlPath, err))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res.ScriptPath)
	fmt.Fprintln(out, res.LibraryPath)
	for _, d := range res.Diagnostics {
		a.log.Debug(d.String())
	}
	return nil
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <html-path>",
		Short: "Export the configured scene next to an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportOnce(cmd, args[0])
		},
	}
}
