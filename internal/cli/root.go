// Package cli wires the midikeys commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/midikeys/internal/config"
	"github.com/leandrodaf/midikeys/internal/keyboard/kbdryrun"
	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/leandrodaf/midikeys/sdk/player"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath   string
	logLevel     string
	logFile      string
	dryRun       bool
	settleMs     int
	startDelayMs int
	cancelKey    string
	basePitch    int
	drift        bool
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:   "midikeys",
	Short: "Play MIDI files as keyboard presses",
	Long: `midikeys plays MIDI files on on-screen pianos by simulating key presses.
Focus the target window during the start delay; hold the cancel key (Escape by default) to stop.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/midikeys/config.json)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "log key presses instead of sending them")
	pf.IntVar(&flags.settleMs, "settle-ms", 0, "milliseconds to wait around shift changes")
	pf.IntVar(&flags.startDelayMs, "start-delay-ms", 0, "milliseconds to wait before the first note")
	pf.StringVar(&flags.cancelKey, "cancel-key", "", "physical key that stops playback")
	pf.IntVar(&flags.basePitch, "base-pitch", 0, "MIDI pitch of the lowest key")
	pf.BoolVar(&flags.drift, "drift-compensation", false, "schedule against absolute deadlines")
}

// Execute runs the root command until it returns or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFrom(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("settle-ms") {
		cfg.SettleMarginMs = flags.settleMs
	}
	if changed("start-delay-ms") {
		cfg.StartDelayMs = flags.startDelayMs
	}
	if changed("cancel-key") {
		cfg.CancelKey = flags.cancelKey
	}
	if changed("base-pitch") {
		cfg.BasePitch = flags.basePitch
	}
	if changed("drift-compensation") {
		cfg.DriftCompensation = flags.drift
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) contracts.Logger {
	log := logger.NewZapLogger()
	if cfg.LogFile != "" {
		log.SetDestination(contracts.FileLog, cfg.LogFile)
	}
	level, _ := contracts.ParseLogLevel(cfg.LogLevel)
	log.SetLevel(level)
	return log
}

// newPlayer builds a player from config and flags.
func newPlayer(cmd *cobra.Command) (*player.Player, *config.Config, contracts.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log := newLogger(cfg)

	opts := append(cfg.PlayerOptions(), contracts.WithLogger(log))
	if flags.dryRun {
		opts = append(opts, contracts.WithKeyboard(kbdryrun.New(log)))
	}
	p, err := player.NewPlayer(opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return p, cfg, log, nil
}
