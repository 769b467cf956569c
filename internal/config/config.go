package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"violations-dashboard/internal/analytics"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data sources the dashboard can load violations from.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	DataSource    string `mapstructure:"DATA_SOURCE"`
	CSVPath       string `mapstructure:"CSV_PATH"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	ColorScheme   string `mapstructure:"COLOR_SCHEME"`
	ColorSeed     uint64 `mapstructure:"COLOR_SEED"`
	TopN          int    `mapstructure:"TOP_N"`
	YearMin       int    `mapstructure:"YEAR_MIN"`
	YearMax       int    `mapstructure:"YEAR_MAX"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS": ":8080",
	"DATA_SOURCE":    SourceCSV,
	"CSV_PATH":       "data/boston_building_violations.csv",
	"DB_SOURCE":      "",
	"SQLITE_PATH":    "data/violations.db",
	"COLOR_SCHEME":   analytics.SchemeRandom,
	"COLOR_SEED":     0,
	"TOP_N":          3,
	"YEAR_MIN":       2009,
	"YEAR_MAX":       2023,
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "console",
}

// LoadConfig reads app.env from path, if present, and lets environment
// variables override it. A .env file in the working directory is loaded
// into the environment first.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("config: failed to load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}
	return config, nil
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var problems []string

	if c.ServerAddress == "" {
		problems = append(problems, "SERVER_ADDRESS cannot be empty")
	}

	switch c.DataSource {
	case SourceCSV:
		if c.CSVPath == "" {
			problems = append(problems, "CSV_PATH is required when DATA_SOURCE is csv")
		}
	case SourcePostgres:
		if c.DBSource == "" {
			problems = append(problems, "DB_SOURCE is required when DATA_SOURCE is postgres")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is required when DATA_SOURCE is sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DATA_SOURCE %q: must be one of csv, postgres, sqlite", c.DataSource))
	}

	if c.ColorScheme != analytics.SchemeRandom && c.ColorScheme != analytics.SchemeHash {
		problems = append(problems, fmt.Sprintf("invalid COLOR_SCHEME %q: must be random or hash", c.ColorScheme))
	}
	if c.TopN < 1 {
		problems = append(problems, fmt.Sprintf("invalid TOP_N %d: must be at least 1", c.TopN))
	}
	if c.YearMin > c.YearMax {
		problems = append(problems, fmt.Sprintf("YEAR_MIN %d is after YEAR_MAX %d", c.YearMin, c.YearMax))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
