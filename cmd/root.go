package cmd

import (
	"os"

	"github.com/jsphweid/midistrip/config"
	"github.com/jsphweid/midistrip/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "midistrip",
	Short: "Strips empty tracks and CC/PC messages from MIDI files",
	Long: `midistrip removes tracks without notes or tempo events and deletes
program change and control change messages from Standard MIDI Files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, _, _, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}
		if logFormat != "" {
			loaded.Logging.Format = logFormat
		}
		l, err := logging.New(loaded.Logging.Level, loaded.Logging.Format, os.Stderr)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/midistrip/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "console or json")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
