// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"canvasctl/internal/canvas"
	"canvasctl/internal/config"
	"canvasctl/internal/course"
	"canvasctl/internal/reconcile"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference and delegate through its fields, so
	// tests can substitute a fake config provider or Canvas API.
	App struct {
		Config config.Provider
		NewAPI APIFactory
		stdout io.Writer
		stderr io.Writer
	}

	// APIFactory builds the Canvas API used by commands that talk to the
	// network. Production uses the real client; tests inject fakes.
	APIFactory func(cfg *config.Config, logger *log.Logger) reconcile.API

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		NewAPI APIFactory
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp builds the CLI composition root with production defaults for any
// dependency left nil.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		NewAPI: deps.NewAPI,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.NewAPI == nil {
		app.NewAPI = defaultAPIFactory
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

func defaultAPIFactory(cfg *config.Config, logger *log.Logger) reconcile.API {
	return canvas.NewClient(
		canvas.WithBaseURL(cfg.Canvas.BaseURL),
		canvas.WithToken(cfg.Canvas.Token),
		canvas.WithLogger(logger),
	)
}

// loadConfig loads the tool configuration, honoring the --config flag and
// folding ui.verbose into the --verbose flag state.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return nil, err
	}
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	return cfg, nil
}

// loadCourse resolves and loads the course file: the --course flag when set,
// otherwise an ancestor-directory search for the configured file name.
func (a *App) loadCourse(cfg *config.Config) (*course.Config, error) {
	path := courseFile
	if path == "" {
		found, err := course.Find(cfg.Course.File, "")
		if err != nil {
			return nil, err
		}
		path = found
	}
	return course.Load(path)
}

// api builds an authenticated Canvas API from the configuration.
func (a *App) api(cfg *config.Config) (reconcile.API, error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}
	return a.NewAPI(cfg, a.logger()), nil
}

// poster builds the week poster for a loaded course.
func (a *App) poster(api reconcile.API, cfg *config.Config, crs *course.Config) (*reconcile.Poster, error) {
	sem, err := crs.SemesterDates()
	if err != nil {
		return nil, err
	}
	return reconcile.NewPoster(api, crs.Course.ID, sem,
		reconcile.WithWebwork(cfg.Webwork.BaseURL, crs.Course.WebworkClass),
		reconcile.WithPosterLogger(a.logger()),
	), nil
}

// courseAPI is the common preamble for commands that need both the course
// file and an authenticated API.
func (a *App) courseAPI(ctx context.Context) (*config.Config, *course.Config, reconcile.API, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	crs, err := a.loadCourse(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	api, err := a.api(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, crs, api, nil
}

// logger returns the CLI logger, at debug level when --verbose is set.
func (a *App) logger() *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{Level: level})
}
