package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
	"github.com/lowaak/smart-trainer/workout-editor/internal/zwo"
)

func TestAll_BuildAndSerialize(t *testing.T) {
	bike := mode.NewBikeMode(250, 70)
	for _, p := range All {
		t.Run(p.Name, func(t *testing.T) {
			w, err := p.Build(bike)
			require.NoError(t, err)
			require.NoError(t, w.Validate())
			assert.NotEmpty(t, w.Intervals)
			assert.Equal(t, p.Name, w.Name)

			m := mode.ForWorkout(w, bike, mode.NewRunMode(mode.DefaultRunningTimes, w.LengthType))
			xml, err := zwo.CreateWorkoutXML(w, m)
			require.NoError(t, err)

			back, err := zwo.ParseWorkoutXML(xml, m)
			require.NoError(t, err)
			assert.Len(t, back.Intervals, len(w.Intervals))
			assert.Len(t, back.Instructions, len(w.Instructions))
		})
	}
}

func TestDurationsMatchLibrary(t *testing.T) {
	bike := mode.NewBikeMode(250, 70)
	tests := map[string]float64{
		"30 Min Endurance":        30 * 60,
		"20 Min FTP Test":         35 * 60,
		"5x5 Threshold Intervals": 47 * 60,
		"Recovery Spin":           45 * 60,
		"VO2max 4x4":              48 * 60,
		"Intervals - 30m":         32 * 60,
		"Intervals - 60m":         60 * 60,
		"HR Zone 2 - 60 Min":      60 * 60,
	}
	for name, seconds := range tests {
		p, ok := ByName(name)
		require.True(t, ok, name)
		w, err := p.Build(bike)
		require.NoError(t, err)
		total, err := w.TotalLength()
		require.NoError(t, err)
		assert.Equal(t, workout.Duration{Seconds: seconds}, total, name)
	}
}

func TestRunDistancePreset(t *testing.T) {
	p, ok := ByName("track 6x800")
	require.True(t, ok)

	w, err := p.Build(mode.BikeMode{})
	require.NoError(t, err)
	assert.Equal(t, workout.SportTypeRun, w.SportType)
	assert.Equal(t, workout.LengthTypeDistance, w.LengthType)

	total, err := w.TotalLength()
	require.NoError(t, err)
	assert.Equal(t, workout.Distance{Meters: 2000 + 6*1200 + 1000}, total)

	require.Len(t, w.Instructions, 1)
	assert.Equal(t, workout.Distance{Meters: 1500}, w.Instructions[0].Offset)
}

func TestByName_Unknown(t *testing.T) {
	_, ok := ByName("nope")
	assert.False(t, ok)
}
