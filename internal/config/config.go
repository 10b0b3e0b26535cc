package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. JF_HTTP_PORT.
const EnvPrefix = "JF"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config captures runtime configuration sourced from flags and environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DBDriver     string
	DatabasePath string
	DatabaseDSN  string
	LogDir       string
	Debug        bool
	MaxPerPage   int
	CORSOrigins  []string
}

func init() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("http_port", "8080")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("db_path", filepath.Join("data", "jouerflux.db"))
	v.SetDefault("db_dsn", "")
	v.SetDefault("log_dir", filepath.Join("data", "logs"))
	v.SetDefault("debug", false)
	v.SetDefault("max_per_page", 100)
	v.SetDefault("cors_origins", "*")
}

// Load reads the global viper instance, which cobra flags are bound to.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom builds a Config from v and prepares the data directory for SQLite.
func LoadFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		Environment:  v.GetString("env"),
		HTTPPort:     v.GetString("http_port"),
		DBDriver:     strings.ToLower(v.GetString("db_driver")),
		DatabasePath: v.GetString("db_path"),
		DatabaseDSN:  v.GetString("db_dsn"),
		LogDir:       v.GetString("log_dir"),
		Debug:        v.GetBool("debug"),
		MaxPerPage:   v.GetInt("max_per_page"),
		CORSOrigins:  splitList(v.GetString("cors_origins")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	if cfg.DBDriver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return Config{}, fmt.Errorf("ensure data directory: %w", err)
		}
	}

	return cfg, nil
}

// New returns a viper instance with the same defaults as the global one.
// Tests use it to avoid sharing state.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for %s", DriverSQLite)
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("%s_DB_DSN is required for %s", EnvPrefix, DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.MaxPerPage < 1 {
		return fmt.Errorf("max per page must be positive, got %d", c.MaxPerPage)
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
