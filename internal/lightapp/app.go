// Package lightapp wires the lighting, timelapse, configuration and UI layers
// together to present the Daylight desktop window.
package lightapp

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/edward-ap/daylight/internal/config"
	"github.com/edward-ap/daylight/internal/lighting"
	"github.com/edward-ap/daylight/internal/metrics"
	"github.com/edward-ap/daylight/internal/platform/windowpos"
	"github.com/edward-ap/daylight/internal/ui"
)

// Options configure NewApp.
type Options struct {
	Logger *zap.SugaredLogger
	Store  *config.Store
	Config *config.Config
	// Metrics may be nil.
	Metrics *metrics.Metrics
	// Ephemeris defaults to lighting.SunCalc.
	Ephemeris lighting.Ephemeris
}

// App owns the fyne application, the main window and the light panel.
type App struct {
	logger *zap.SugaredLogger
	fa     fyne.App
	w      fyne.Window
	store  *config.Store
	panel  *lightPanel

	cancel context.CancelFunc
}

// NewApp builds the window from the loaded config.
func NewApp(opts Options) *App {
	logger := opts.Logger.Named("app")
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	fa := app.NewWithID(config.AppID)
	ui.UseDaylightTheme()
	if AppIcon != nil {
		fa.SetIcon(AppIcon)
	}
	w := fa.NewWindow("Daylight")
	w.SetMaster()
	if AppIcon != nil {
		w.SetIcon(AppIcon)
	}

	var sink lighting.Sink
	if cfg.StyleFile != "" {
		logger.Infow("Writing lighting styles to file", "path", cfg.StyleFile)
		sink = lighting.FileSink{Path: cfg.StyleFile}
	}

	a := &App{logger: logger, fa: fa, w: w, store: opts.Store}
	var save func(*config.Config) error
	if opts.Store != nil {
		save = opts.Store.Save
	}
	a.panel = newLightPanel(panelDeps{
		logger:    opts.Logger,
		cfg:       cfg,
		ephemeris: opts.Ephemeris,
		sink:      sink,
		metrics:   opts.Metrics,
		save:      save,
		now:       time.Now(),
	})

	w.SetContent(a.panel.content)
	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.Canvas().SetOnTypedKey(a.panel.typedKey)
	if cfg.Window.PositionSaved {
		windowpos.Restore(w, windowpos.Position{X: cfg.Window.X, Y: cfg.Window.Y})
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if opts.Metrics != nil && cfg.MetricsAddr != "" {
		go func() {
			if err := opts.Metrics.Serve(ctx, opts.Logger, cfg.MetricsAddr); err != nil {
				logger.Warnw("Metrics endpoint unavailable", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	if opts.Store != nil {
		opts.Store.Watch(func(c *config.Config) {
			ui.CallOnMain(func() { a.panel.applyConfig(c) })
		})
	}

	// window close handler: remember the size, flush settings, release resources
	w.SetCloseIntercept(func() {
		if err := a.Close(); err != nil {
			logger.Warnw("Failed to shut down cleanly", "error", err)
		}
		w.Close()
		fa.Quit()
	})

	logger.Debug("Created app")
	return a
}

// Run shows the window and enters the fyne event loop.
func (a *App) Run() {
	a.w.ShowAndRun()
}

// Close stops background work and persists the window placement.
func (a *App) Close() error {
	a.cancel()
	a.captureWindowPlacement()
	return a.panel.close()
}

func (a *App) captureWindowPlacement() {
	sz := a.w.Canvas().Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return
	}
	win := &a.panel.cfg.Window
	win.Width, win.Height = int(sz.Width), int(sz.Height)
	if pos, ok := windowpos.Get(a.w); ok {
		win.X, win.Y, win.PositionSaved = pos.X, pos.Y, true
	}
	a.panel.scheduleSave()
}
