// Package config loads the scheduler host settings from a YAML file and
// PRINTSCHED_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/TudorHulban/printscheduler"
)

const EnvPrefix = "PRINTSCHED"

type (
	AppConfig struct {
		App       *App       `mapstructure:"app"`
		Logger    *Logger    `mapstructure:"logger"`
		Scheduler *Scheduler `mapstructure:"scheduler"`
	}

	App struct {
		Name string `mapstructure:"name"`
		Farm string `mapstructure:"farm"`
	}

	// Logger holds the zap settings. Encoding is "json" or "console".
	Logger struct {
		Level       string `mapstructure:"level"`
		Encoding    string `mapstructure:"encoding"`
		Development bool   `mapstructure:"development"`
	}

	Scheduler struct {
		Strategy      string   `mapstructure:"strategy"`
		Availability  []Window `mapstructure:"availability"`
		SecondsOffset int64    `mapstructure:"secondsOffset"`
	}

	// Window uses 24h "HH:MM" values.
	Window struct {
		Start string `mapstructure:"start"`
		End   string `mapstructure:"end"`
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "printscheduler")
	v.SetDefault("app.farm", "default")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")

	v.SetDefault("scheduler.strategy", "lock")
	v.SetDefault("scheduler.secondsOffset", 0)
	v.SetDefault(
		"scheduler.availability",
		[]map[string]string{
			{"start": "09:00", "end": "17:00"},
		},
	)
}

// New reads configuration. With an empty path it looks for config.yaml in
// the working directory and /etc/printscheduler, falling back to defaults
// when none is found.
func New(path string) (*AppConfig, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(path) > 0 {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/printscheduler/")
	}

	if errRead := v.ReadInConfig(); errRead != nil {
		var errNotFound viper.ConfigFileNotFoundError

		if len(path) > 0 || !errors.As(errRead, &errNotFound) {
			return nil,
				fmt.Errorf("config: read: %w", errRead)
		}
	}

	var result AppConfig

	if errUnmarshal := v.Unmarshal(&result); errUnmarshal != nil {
		return nil,
			fmt.Errorf("config: decode: %w", errUnmarshal)
	}

	return &result,
		nil
}

// GetWindows parses the configured availability windows.
func (s *Scheduler) GetWindows() ([]printscheduler.AvailabilityWindow, error) {
	result := make([]printscheduler.AvailabilityWindow, 0, len(s.Availability))

	for ix, window := range s.Availability {
		parsed, errParse := printscheduler.ParseAvailabilityWindow(window.Start, window.End)
		if errParse != nil {
			return nil,
				fmt.Errorf("config: availability window %d: %w", ix, errParse)
		}

		result = append(result, *parsed)
	}

	return result,
		nil
}

func (s *Scheduler) GetStrategy() (printscheduler.Strategy, error) {
	return printscheduler.ParseStrategy(s.Strategy)
}
