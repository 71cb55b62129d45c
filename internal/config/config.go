// Package config loads editor settings from defaults, an optional YAML file, WORKOUT_EDITOR_*
// environment variables (a local .env file is read first) and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

const envPrefix = "WORKOUT_EDITOR"

// Config is the resolved application configuration
type Config struct {
	Athlete AthleteConfig
	Workout WorkoutConfig
	Server  ServerConfig
	Log     LogConfig
}

type AthleteConfig struct {
	FTP          float64
	Weight       float64
	RunningTimes mode.RunningTimes
}

type WorkoutConfig struct {
	SportType  workout.SportType
	LengthType workout.LengthType
}

type ServerConfig struct {
	Addr string
}

type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	Stderr     bool
}

// BikeMode returns the bike conversions for the configured rider
func (c Config) BikeMode() mode.BikeMode {
	return mode.NewBikeMode(c.Athlete.FTP, c.Athlete.Weight)
}

// RunMode returns the run conversions for the configured runner and length type
func (c Config) RunMode() mode.RunMode {
	return mode.NewRunMode(c.Athlete.RunningTimes, c.Workout.LengthType)
}

func runningTimeKey(p workout.Pace) string {
	return "athlete.running_times." + strings.ToLower(p.String())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("athlete.ftp", 200)
	v.SetDefault("athlete.weight", 75)
	for _, p := range workout.AllPaces {
		v.SetDefault(runningTimeKey(p), mode.DefaultRunningTimes[p])
	}
	v.SetDefault("workout.sport_type", string(workout.SportTypeBike))
	v.SetDefault("workout.length_type", string(workout.LengthTypeTime))
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.stderr", true)
}

// RegisterFlags adds the config flags. Flags left unset do not override other sources.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a YAML config file")
	flags.Float64("ftp", 0, "functional threshold power in watts")
	flags.Float64("weight", 0, "athlete weight in kg")
	flags.String("sport", "", "sport type for new workouts (bike|run)")
	flags.String("length-type", "", "length type for new run workouts (time|distance)")
	flags.String("addr", "", "HTTP listen address for serve")
	flags.String("log-file", "", "rotating log file; empty logs to stderr only")
}

var flagKeys = map[string]string{
	"ftp":         "athlete.ftp",
	"weight":      "athlete.weight",
	"sport":       "workout.sport_type",
	"length-type": "workout.length_type",
	"addr":        "server.addr",
	"log-file":    "log.file",
}

// LoadDotEnv reads .env files into the process environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load resolves the configuration. flags may be nil when no flags apply.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := os.Getenv(envPrefix + "_CONFIG")
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if flags != nil {
		if p, err := flags.GetString("config"); err == nil && p != "" {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.Athlete.FTP = v.GetFloat64("athlete.ftp")
	cfg.Athlete.Weight = v.GetFloat64("athlete.weight")
	for _, p := range workout.AllPaces {
		cfg.Athlete.RunningTimes[p] = v.GetFloat64(runningTimeKey(p))
	}

	sport, err := workout.ParseSportType(v.GetString("workout.sport_type"))
	if err != nil {
		return Config{}, fmt.Errorf("workout.sport_type: %w", err)
	}
	lengthType, err := workout.ParseLengthType(v.GetString("workout.length_type"))
	if err != nil {
		return Config{}, fmt.Errorf("workout.length_type: %w", err)
	}
	cfg.Workout = WorkoutConfig{SportType: sport, LengthType: lengthType}

	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Log = LogConfig{
		File:       v.GetString("log.file"),
		MaxSizeMB:  v.GetInt("log.max_size_mb"),
		MaxBackups: v.GetInt("log.max_backups"),
		Stderr:     v.GetBool("log.stderr"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Athlete.FTP <= 0 {
		return fmt.Errorf("athlete.ftp must be positive, got %g", c.Athlete.FTP)
	}
	if c.Athlete.Weight <= 0 {
		return fmt.Errorf("athlete.weight must be positive, got %g", c.Athlete.Weight)
	}
	for _, p := range workout.AllPaces {
		if c.Athlete.RunningTimes[p] <= 0 {
			return fmt.Errorf("%s must be positive", runningTimeKey(p))
		}
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}
