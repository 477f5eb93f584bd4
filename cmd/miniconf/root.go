package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"impractical.co/miniconf/internal/config"
	"impractical.co/miniconf/internal/logging"
)

// app is the state the subcommands share, filled in before any of them run.
type app struct {
	configFile string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "miniconf",
		Short: "Build and preview a virtual conference website",
		Long: `miniconf turns a directory of conference data (papers, sessions,
plenary talks, tutorials, workshops, and markdown pages) into a website,
either written out as static files or served for preview.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./miniconf.yaml)")
	flags.String("data-dir", "", "site data directory")
	flags.String("template-dir", "", "directory of templates to use instead of the built-in ones")
	flags.String("static-dir", "", "directory of static assets")
	flags.String("log-level", "", "log level: debug, info, warn, or error")

	root.AddCommand(
		newBuildCmd(a),
		newServeCmd(a),
		newValidateCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), level)
	if cfg.File != "" {
		logger.Debug("using config file", "file", cfg.File)
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

func (a *app) dataFS() fs.FS {
	return os.DirFS(a.cfg.DataDir)
}

// templateFS returns nil when no template directory is set, which means the
// built-in templates.
func (a *app) templateFS() fs.FS {
	if a.cfg.TemplateDir == "" {
		return nil
	}
	return os.DirFS(a.cfg.TemplateDir)
}

// staticFS returns nil when the static directory isn't set or doesn't
// exist.
func (a *app) staticFS() (fs.FS, error) {
	if a.cfg.StaticDir == "" {
		return nil, nil
	}
	info, err := os.Stat(a.cfg.StaticDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: a.cfg.StaticDir, Err: errors.New("not a directory")}
	}
	return os.DirFS(a.cfg.StaticDir), nil
}
