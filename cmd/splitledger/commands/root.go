package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/storage/sqlstore"
	"github.com/mmynk/splitledger/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "splitledger",
	Short: "Splitledger - personal and shared finance ledger",
	Long: `Splitledger records income, expenses and payments, splits expenses into
per-person debt lines, redistributes a full payer's payment onto other
people's debts and keeps a per-person credit balance.

Settings come from the environment or a .env file; flags override them.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("db-driver", "", "database driver: sqlite or postgres (env DB_DRIVER)")
	flags.String("db-path", "", "SQLite database file (env DB_PATH)")
	flags.String("database-url", "", "PostgreSQL connection URL (env DATABASE_URL)")
}

// loadConfig reads the environment and applies any flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("db-path") {
		cfg.DBPath, _ = flags.GetString("db-path")
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL, _ = flags.GetString("database-url")
		if !flags.Changed("db-driver") {
			cfg.DBDriver = config.DriverPostgres
		}
	}
	if flags.Changed("db-driver") {
		cfg.DBDriver, _ = flags.GetString("db-driver")
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// openStore connects to the configured database and runs migrations.
func openStore(cfg *config.Config) (*sqlstore.Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		store, err := sqlstore.NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.DBDriver, "database", cfg.DBPath)
		return store, nil
	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres driver requires --database-url or DATABASE_URL")
		}
		store, err := sqlstore.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.DBDriver)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
