package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edward-ap/daylight/internal/applog"
	"github.com/edward-ap/daylight/internal/config"
	"github.com/edward-ap/daylight/internal/lightapp"
	"github.com/edward-ap/daylight/internal/metrics"
)

var (
	logger     *zap.SugaredLogger
	configPath string
	debug      bool
)

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"lat":          "latitude",
	"lng":          "longitude",
	"tz":           "timezone",
	"metrics-addr": "metrics_addr",
	"style-file":   "style_file",
}

var rootCmd = &cobra.Command{
	Use:   "daylight",
	Short: "Daylight previews sun and moon lighting for a place and time",
	Long: `Daylight computes map lighting from the sun and moon position at a
location. Pick a date and a time of day, or play a timelapse, and watch the
lighting style update.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := applog.NewLogger(debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app := lightapp.NewApp(lightapp.Options{
			Logger:  logger,
			Store:   store,
			Config:  cfg,
			Metrics: metrics.New(),
		})
		app.Run()
		return nil
	},
}

func loadConfig(cmd *cobra.Command) (*config.Store, *config.Config, error) {
	store, err := config.NewStore(logger, configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.BindFlags(cmd.Flags(), flagKeys); err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config %s: %w", store.Path(), err)
	}
	return store, cfg, nil
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default is the user config dir)")
	pf.BoolVar(&debug, "debug", false, "log debug output to stderr")
	pf.Float64("lat", config.DefaultLatitude, "observer latitude in degrees")
	pf.Float64("lng", config.DefaultLongitude, "observer longitude in degrees")
	pf.String("tz", config.DefaultTimezone, "IANA time zone of the observer")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	pf.String("style-file", "", "also write every lighting style to this YAML file")
}
