package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

const fileYAML = `
athlete:
  ftp: 250
  weight: 68
  running_times:
    5k: 1100
workout:
  sport_type: run
  length_type: distance
server:
  addr: ":9000"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Athlete.FTP)
	assert.Equal(t, 75.0, cfg.Athlete.Weight)
	assert.Equal(t, mode.DefaultRunningTimes, cfg.Athlete.RunningTimes)
	assert.Equal(t, workout.SportTypeBike, cfg.Workout.SportType)
	assert.Equal(t, workout.LengthTypeTime, cfg.Workout.LengthType)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.True(t, cfg.Log.Stderr)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTemp(t, "config.yaml", fileYAML)

	cfg, err := Load(flagSet(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Athlete.FTP)
	assert.Equal(t, 68.0, cfg.Athlete.Weight)
	assert.Equal(t, 1100.0, cfg.Athlete.RunningTimes[workout.Pace5K])
	assert.Equal(t, mode.DefaultRunningTimes[workout.PaceMarathon], cfg.Athlete.RunningTimes[workout.PaceMarathon])
	assert.Equal(t, workout.SportTypeRun, cfg.Workout.SportType)
	assert.Equal(t, workout.LengthTypeDistance, cfg.Workout.LengthType)
	assert.Equal(t, ":9000", cfg.Server.Addr)

	t.Setenv("WORKOUT_EDITOR_ATHLETE_FTP", "260")
	t.Setenv("WORKOUT_EDITOR_SERVER_ADDR", ":9100")
	cfg, err = Load(flagSet(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 260.0, cfg.Athlete.FTP, "env beats file")
	assert.Equal(t, ":9100", cfg.Server.Addr)

	cfg, err = Load(flagSet(t, "--config", path, "--ftp", "270"))
	require.NoError(t, err)
	assert.Equal(t, 270.0, cfg.Athlete.FTP, "flag beats env")
	assert.Equal(t, ":9100", cfg.Server.Addr, "unset flag does not override")
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	t.Setenv("WORKOUT_EDITOR_CONFIG", writeTemp(t, "config.yaml", fileYAML))
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Athlete.FTP)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"WORKOUT_EDITOR_ATHLETE_FTP":             "0",
		"WORKOUT_EDITOR_WORKOUT_SPORT_TYPE":      "swim",
		"WORKOUT_EDITOR_WORKOUT_LENGTH_TYPE":     "laps",
		"WORKOUT_EDITOR_ATHLETE_WEIGHT":          "-1",
		"WORKOUT_EDITOR_ATHLETE_RUNNING_TIMES_M": "0",
	}
	for env, value := range tests {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, value)
			_, err := Load(nil)
			assert.Error(t, err)
		})
	}

	_, err := Load(flagSet(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	t.Setenv("WORKOUT_EDITOR_ATHLETE_WEIGHT", "")
	os.Unsetenv("WORKOUT_EDITOR_ATHLETE_WEIGHT")
	require.NoError(t, LoadDotEnv(writeTemp(t, ".env", "WORKOUT_EDITOR_ATHLETE_WEIGHT=81\n")))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 81.0, cfg.Athlete.Weight)
}

func TestModes(t *testing.T) {
	cfg, err := Load(flagSet(t, "--ftp", "300", "--weight", "60", "--sport", "run", "--length-type", "distance"))
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.BikeMode().FTP)
	assert.Equal(t, workout.LengthTypeDistance, cfg.RunMode().LengthType())
}
