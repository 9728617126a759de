// Package root contains the root command for the application.
package root

import (
	"npatel/merge-csv/internal/common"
	"npatel/merge-csv/internal/config"
	"npatel/merge-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded configuration, available after PersistentPreRunE.
	Cfg *config.Config

	// AccountsDir overrides the configured accounts directory when set.
	AccountsDir string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "merge-csv",
		Short: "Merge bank export CSV files and categorize transactions.",
		Long: `merge-csv merges the bank export files of one period folder into a
canonical transaction list, deduplicates them, and assigns each a spending
category through a mapping/rules/statistical waterfall.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			if AccountsDir != "" {
				cfg.Accounts.Directory = AccountsDir
			}
			Cfg = cfg

			Log = config.ConfigureLoggingFromConfig(cfg)
			common.SetLogger(logging.NewLogrusAdapterFromLogger(Log))
			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			return nil
		},
	}
)

// Init wires the persistent flags. Called from main before Execute.
func Init() {
	Cmd.PersistentFlags().StringVarP(&AccountsDir, "accounts-dir", "a", "",
		"Accounts root directory (overrides config and environment)")
}

// Logger returns the shared logger behind the logging interface.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
