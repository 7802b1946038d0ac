package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"seal-editor/internal/config"
	"seal-editor/internal/editor"
	"seal-editor/internal/logger"
	"seal-editor/internal/shutdown"
	"seal-editor/internal/textio"
)

const component = "Application"

// Application owns the fyne app and every editor window opened in it.
type Application struct {
	fyneApp   fyne.App
	config    config.Config
	logger    logger.Logger
	store     *textio.Store
	shutdown  *shutdown.Manager
	lifecycle *Lifecycle
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fyneApp := app.NewWithID(config.AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      config.AppID,
		Name:    config.AppName,
		Version: config.AppVersion,
	})

	return newApplication(fyneApp, cfg, log), nil
}

func newApplication(fyneApp fyne.App, cfg config.Config, log logger.Logger) *Application {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	a := &Application{
		fyneApp:  fyneApp,
		config:   cfg,
		logger:   log,
		store:    textio.NewStore(),
		shutdown: shutdown.NewManager(log),
	}
	a.lifecycle = NewLifecycle(log, a.lastWindowClosed)

	log.Info(component, "application created", map[string]interface{}{
		"version":       config.AppVersion,
		"window_width":  cfg.WindowWidth,
		"window_height": cfg.WindowHeight,
		"watch_files":   cfg.WatchFiles,
	})
	return a
}

// NewWindow opens an independent editor window. When path names an existing
// regular file it is loaded, otherwise the window starts empty.
func (a *Application) NewWindow(path string) *editor.Window {
	w := editor.New(a.fyneApp, editor.Options{
		Config:  a.config,
		Logger:  a.logger,
		Store:   a.store,
		Context: a.shutdown.Context(),
		OnNewWindow: func() {
			a.NewWindow("")
		},
		OnClosed: a.windowClosed,
	})
	a.lifecycle.Add(w)
	a.shutdown.Register(w)

	if path != "" {
		w.OpenExisting(path)
	}
	w.Show()

	a.logger.Debug(component, "editor window opened", map[string]interface{}{
		"path":    w.Session().Path(),
		"windows": a.lifecycle.Len(),
	})
	return w
}

// Windows returns the number of open editor windows.
func (a *Application) Windows() int {
	return a.lifecycle.Len()
}

// Run opens the first window and blocks until the application quits.
func (a *Application) Run(path string) error {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.NewWindow(path)

	a.logger.Info(component, "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}

func (a *Application) windowClosed(w *editor.Window) {
	a.shutdown.Unregister(w)
	a.lifecycle.Remove(w)
}

func (a *Application) lastWindowClosed() {
	a.logger.Info(component, "last window closed", nil)
	a.fyneApp.Quit()
}
