package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/config"
	"github.com/jouerflux/jouerflux/internal/database"
	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jouerflux",
		Short:         "Firewall, policy and rule management API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.String("port", "", "HTTP listen port (JF_HTTP_PORT)")
	flags.String("db-driver", "", "database driver: sqlite or postgres (JF_DB_DRIVER)")
	flags.String("db-path", "", "SQLite database file (JF_DB_PATH)")
	flags.Bool("debug", false, "verbose text logging (JF_DEBUG)")
	bindFlags(viper.GetViper(), flags)

	root.AddCommand(newServeCmd(), newMigrateCmd(), newVersionCmd())
	return root
}

// bindFlags maps each flag onto its config key. A flag only overrides the
// environment when it is set on the command line.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for flag, key := range map[string]string{
		"port":      "http_port",
		"db-driver": "db_driver",
		"db-path":   "db_path",
		"debug":     "debug",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// setup loads configuration, starts logging and opens the store.
func setup() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Debug, logOutput(cfg.LogDir))
	logger.Log().WithField("version", version.Full()).Infof("starting %s", version.Name)

	db, err := database.Open(cfg)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

// logOutput writes to stdout and, when logDir is usable, a rotated file.
func logOutput(logDir string) io.Writer {
	if logDir == "" {
		return os.Stdout
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return os.Stdout
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "jouerflux.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, rotator)
}
