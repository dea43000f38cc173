package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/edward-ap/daylight/internal/config"
	"github.com/edward-ap/daylight/internal/lighting"
)

const atLayout = "2006-01-02 15:04"

var styleAt string

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Print the lighting style for a moment as YAML",
	Example: `  daylight style --at "2024-06-21 21:30"
  daylight style --lat -33.87 --lng 151.21 --tz Australia/Sydney`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		at, err := parseAt(styleAt, time.Now(), cfg.Timezone.Location)
		if err != nil {
			return err
		}
		return writeStyle(cmd.OutOrStdout(), cfg, at, nil)
	},
}

// parseAt reads a wall clock time in loc; an empty value means now.
func parseAt(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation(atLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q, want %q: %w", value, atLayout, err)
	}
	return t, nil
}

// writeStyle computes the lighting at t for cfg and writes it as a YAML
// document.
func writeStyle(w io.Writer, cfg *config.Config, t time.Time, eph lighting.Ephemeris) error {
	c := lighting.NewControl(logger, eph, lighting.WriterSink{W: w},
		lighting.Location{Lat: cfg.Latitude, Lng: cfg.Longitude})
	c.SetParams(lighting.Params{
		Sun:     cfg.SunIntensity,
		Ambient: cfg.AmbientIntensity,
		Moon:    lighting.DefaultMoonIntensity,
	})
	_, err := c.SetLightingForDate(t)
	return err
}

func init() {
	styleCmd.Flags().StringVar(&styleAt, "at", "", "local time as \"YYYY-MM-DD HH:MM\" (default now)")
	rootCmd.AddCommand(styleCmd)
}
