// Package config assembles runtime settings from an optional YAML file and
// the process environment. Environment variables always win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr               = ":8080"
	DefaultShutdownTimeout    = 5 * time.Second
	DefaultWeatherAreaURL     = "https://www.jma.go.jp/bosai/common/const/area.json"
	DefaultWeatherForecastURL = "https://www.jma.go.jp/bosai/forecast/data/forecast/%s.json"
	DefaultWeatherDBPath      = "weather_forecast.db"
	DefaultWeatherHTTPTimeout = 10 * time.Second
)

type Config struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	OTelLogs        bool          `yaml:"otel_logs"`
	Weather         Weather       `yaml:"weather"`
}

type Weather struct {
	AreaURL string `yaml:"area_url"`
	// ForecastURL is a fmt template taking the area code.
	ForecastURL string        `yaml:"forecast_url"`
	DBPath      string        `yaml:"db_path"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

func Default() Config {
	return Config{
		Addr:            DefaultAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		Weather: Weather{
			AreaURL:     DefaultWeatherAreaURL,
			ForecastURL: DefaultWeatherForecastURL,
			DBPath:      DefaultWeatherDBPath,
			HTTPTimeout: DefaultWeatherHTTPTimeout,
		},
	}
}

// Load returns defaults, overlaid by the YAML file named in CONFIG_FILE (if
// any), overlaid by individual environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("WEATHER_AREA_URL"); ok && v != "" {
		c.Weather.AreaURL = v
	}
	if v, ok := lookup("WEATHER_FORECAST_URL"); ok && v != "" {
		c.Weather.ForecastURL = v
	}
	if v, ok := lookup("WEATHER_DB_PATH"); ok && v != "" {
		c.Weather.DBPath = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
		{"WEATHER_HTTP_TIMEOUT", &c.Weather.HTTPTimeout},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if v, ok := lookup("OTEL_LOGS_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse OTEL_LOGS_ENABLED: %w", err)
		}
		c.OTelLogs = enabled
	}

	return nil
}
