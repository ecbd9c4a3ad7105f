//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"modcalc/app"
	"modcalc/hal"
	"modcalc/internal/buildinfo"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "modcalc",
	Short: "MOD calculator watch app on a desktop host",
	Long: `Runs the MOD calculator in a desktop window, a terminal or headless.

Keys: Up/W and Down/S adjust the oxygen percentage (hold to repeat),
Esc/Backspace/Left exits and saves.

Examples:
  modcalc
  modcalc --tui
  modcalc --headless --ticks 120 --keys "up*3,down"
  modcalc --config modcalc.hcl --store sqlite --db watch.db`,
	SilenceUsage: true,
	RunE:         runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "modcalc "+buildinfo.Describe())
	},
}

func init() {
	f := rootCmd.Flags()
	f.String("config", "", "HCL config file")
	f.Bool("headless", false, "run without a window")
	f.Bool("tui", false, "render in the terminal")
	f.Int("hz", 60, "frame rate for headless and terminal runs")
	f.Uint64("ticks", 0, "stop a headless run after N frames (0 = until the app exits)")
	f.String("keys", "", `headless key script, e.g. "up*3,down,back"`)
	f.String("store", app.StoreFlash, "persistence backend: flash or sqlite")
	f.String("flash", "", "flash image path (default $MODCALC_FLASH_PATH or modcalc.flash)")
	f.String("db", "", "SQLite database path for --store sqlite")
	f.Int("scale", 0, "window scale factor")

	rootCmd.AddCommand(versionCmd)
}

// settings merges defaults, the config file and flags, in that order.
func settings(cmd *cobra.Command) (app.HostSettings, error) {
	s := app.DefaultHostSettings()
	f := cmd.Flags()

	if path, _ := f.GetString("config"); path != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			return s, err
		}
		if err := fc.Apply(&s); err != nil {
			return s, err
		}
	}

	if f.Changed("store") {
		s.App.Store, _ = f.GetString("store")
	}
	if f.Changed("flash") {
		s.Host.FlashPath, _ = f.GetString("flash")
	}
	if f.Changed("db") {
		s.App.DBPath, _ = f.GetString("db")
	}
	if f.Changed("scale") {
		s.Scale, _ = f.GetInt("scale")
	}
	return s, s.Validate()
}

func runRoot(cmd *cobra.Command, args []string) error {
	s, err := settings(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	headless, _ := f.GetBool("headless")
	tui, _ := f.GetBool("tui")
	hz, _ := f.GetInt("hz")

	newApp := func(h hal.HAL) (hal.App, error) {
		return app.NewWithConfig(h, s.App)
	}

	switch {
	case headless:
		ticks, _ := f.GetUint64("ticks")
		keys, _ := f.GetString("keys")
		script, err := hal.ParseKeyScript(keys)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, hal.HeadlessConfig{
			Host:   s.Host,
			Hz:     hz,
			Ticks:  ticks,
			Script: script,
		}, newApp)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case tui:
		return hal.RunTerminal(hal.TerminalConfig{Host: s.Host, Hz: hz}, newApp)
	default:
		return hal.RunWindow(hal.WindowConfig{Host: s.Host, Scale: s.Scale}, newApp)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
