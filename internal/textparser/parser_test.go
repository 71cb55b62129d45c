package textparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

func TestParseBikeText_Steady(t *testing.T) {
	blocks := ParseBikeText("steady 150w 5m", 200, 75)
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockSteady, blocks[0].Type)
	assert.InDelta(t, 0.75, blocks[0].Power, 1e-9)
	assert.Equal(t, 300.0, blocks[0].Duration)

	blocks = ParseBikeText("steady 3.0wkg 10m", 200, 75)
	require.Len(t, blocks, 1)
	assert.InDelta(t, 1.125, blocks[0].Power, 1e-9)
	assert.Equal(t, 600.0, blocks[0].Duration)

	blocks = ParseBikeText("Steady 85% 1:30m 95rpm", 200, 75)
	require.Len(t, blocks, 1)
	assert.InDelta(t, 0.85, blocks[0].Power, 1e-9)
	assert.Equal(t, 90.0, blocks[0].Duration)
	assert.Equal(t, 95, blocks[0].Cadence)
}

func TestParseBikeText_Interval(t *testing.T) {
	blocks := ParseBikeText("interval 5x 30s-90s 250w-150w", 200, 75)
	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.Equal(t, BlockInterval, b.Type)
	assert.Equal(t, 5, b.Repeat)
	assert.Equal(t, 30.0, b.Duration)
	assert.Equal(t, 90.0, b.OffDuration)
	assert.InDelta(t, 1.25, b.Power, 1e-9)
	assert.InDelta(t, 0.75, b.EndPower, 1e-9)

	blocks = ParseBikeText("interval 4x 1:30m-2m 4.0-2.0wkg 100-80rpm", 200, 75)
	require.Len(t, blocks, 1)
	b = blocks[0]
	assert.Equal(t, 4, b.Repeat)
	assert.Equal(t, 90.0, b.Duration)
	assert.Equal(t, 120.0, b.OffDuration)
	assert.InDelta(t, 1.5, b.Power, 1e-9)
	assert.InDelta(t, 0.75, b.EndPower, 1e-9)
	assert.Equal(t, 100, b.Cadence)
	assert.Equal(t, 80, b.OffCadence)
}

func TestParseBikeText_Ramps(t *testing.T) {
	blocks := ParseBikeText("warmup 10m 50%-75%\nramp 2m 200w-300w\ncooldown", 200, 75)
	require.Len(t, blocks, 3)

	assert.Equal(t, BlockRamp, blocks[0].Type)
	assert.Equal(t, 600.0, blocks[0].Duration)
	assert.InDelta(t, 0.5, blocks[0].Power, 1e-9)
	assert.InDelta(t, 0.75, blocks[0].EndPower, 1e-9)

	assert.Equal(t, 120.0, blocks[1].Duration)
	assert.InDelta(t, 1.0, blocks[1].Power, 1e-9)
	assert.InDelta(t, 1.5, blocks[1].EndPower, 1e-9)

	assert.Equal(t, 300.0, blocks[2].Duration)
	assert.InDelta(t, defaultWarmupEnd, blocks[2].Power, 1e-9)
	assert.InDelta(t, defaultWarmupStart, blocks[2].EndPower, 1e-9)
}

func TestParseBikeText_Leniency(t *testing.T) {
	text := `
steady

something unrelated
free ride
interval
`
	blocks := ParseBikeText(text, 200, 75)
	require.Len(t, blocks, 3)

	assert.Equal(t, Block{Type: BlockSteady, Duration: 300, Power: 1.0}, blocks[0])
	assert.Equal(t, Block{Type: BlockFree, Duration: 600}, blocks[1])
	assert.Equal(t, Block{
		Type: BlockInterval, Repeat: defaultRepeat, Duration: defaultOnSeconds, OffDuration: defaultOffSeconds,
		Power: defaultPower, EndPower: defaultOffPower,
	}, blocks[2])
}

func TestParseBikeText_Messages(t *testing.T) {
	blocks := ParseBikeText(`message "steady now, ramp later" 12:00
message Spin up 90s
message:Go`, 200, 75)
	require.Len(t, blocks, 3)

	for _, b := range blocks {
		assert.Equal(t, BlockMessage, b.Type)
	}
	assert.Equal(t, "steady now, ramp later", blocks[0].Text)
	assert.Equal(t, 720.0, blocks[0].Offset)
	assert.Equal(t, "Spin up", blocks[1].Text)
	assert.Equal(t, 90.0, blocks[1].Offset)
	assert.Equal(t, "Go", blocks[2].Text)
	assert.Equal(t, 0.0, blocks[2].Offset)
}

func TestParseRunText_Time(t *testing.T) {
	blocks := ParseRunText("steady 90%10K 10m i2%\ninterval 6x 1m-1m 110%-70%5K i-1%\nfree run", workout.LengthTypeTime)
	require.Len(t, blocks, 3)

	s := blocks[0]
	assert.InDelta(t, 0.9, s.Power, 1e-9)
	assert.Equal(t, workout.Pace10K, s.Pace)
	assert.Equal(t, 600.0, s.Duration)
	assert.Equal(t, 0.0, s.Distance)
	assert.Equal(t, 2.0, s.Incline)

	iv := blocks[1]
	assert.Equal(t, 6, iv.Repeat)
	assert.Equal(t, 60.0, iv.Duration)
	assert.Equal(t, 60.0, iv.OffDuration)
	assert.InDelta(t, 1.1, iv.Power, 1e-9)
	assert.InDelta(t, 0.7, iv.EndPower, 1e-9)
	assert.Equal(t, workout.Pace5K, iv.Pace)
	assert.Equal(t, -1.0, iv.Incline)

	assert.Equal(t, Block{Type: BlockFree, Duration: defaultFreeSeconds}, blocks[2])
}

func TestParseRunText_Distance(t *testing.T) {
	blocks := ParseRunText(`warmup 1km 50%-70%M
steady 2.5km 80%HM
interval 6x 400m-200m 105%-60%5K
message "Halfway" 1.5km
free run`, workout.LengthTypeDistance)
	require.Len(t, blocks, 5)

	assert.Equal(t, 1000.0, blocks[0].Distance)
	assert.Equal(t, workout.PaceMarathon, blocks[0].Pace)
	assert.InDelta(t, 0.7, blocks[0].EndPower, 1e-9)

	assert.Equal(t, 2500.0, blocks[1].Distance)
	assert.Equal(t, 0.0, blocks[1].Duration)
	assert.Equal(t, workout.PaceHalfMarathon, blocks[1].Pace)

	assert.Equal(t, 400.0, blocks[2].Distance)
	assert.Equal(t, 200.0, blocks[2].OffDistance)
	assert.Equal(t, workout.Pace5K, blocks[2].Pace)

	assert.Equal(t, "Halfway", blocks[3].Text)
	assert.Equal(t, 1500.0, blocks[3].Offset)

	assert.Equal(t, defaultFreeMeters+0.0, blocks[4].Distance)
}

func TestParseRunText_InclineIsNotPower(t *testing.T) {
	blocks := ParseRunText("steady i5% 10m", workout.LengthTypeTime)
	require.Len(t, blocks, 1)
	assert.Equal(t, defaultPower, blocks[0].Power)
	assert.Equal(t, 5.0, blocks[0].Incline)
}

func TestBlocksToWorkout_Bike(t *testing.T) {
	blocks := ParseBikeText(`warmup 10m 50%-75%
message "Settle in" 5:00
interval 5x 30s-90s 250w-150w
message "Cool down" 2:00:00
free ride 5m`, 200, 75)

	w, err := BlocksToWorkout(blocks, workout.SportTypeBike, workout.LengthTypeDistance)
	require.NoError(t, err)
	assert.Equal(t, workout.LengthTypeTime, w.LengthType)
	require.Len(t, w.Intervals, 3)

	ramp, ok := w.Intervals[0].(workout.Ramp)
	require.True(t, ok)
	assert.Equal(t, workout.Duration{Seconds: 600}, ramp.Length)

	rep, ok := w.Intervals[1].(workout.Repetition)
	require.True(t, ok)
	assert.Equal(t, 5, rep.Repeat)
	assert.Equal(t, workout.Duration{Seconds: 30}, rep.OnLength)
	assert.Equal(t, workout.Duration{Seconds: 90}, rep.OffLength)

	_, ok = w.Intervals[2].(workout.Free)
	assert.True(t, ok)

	total, err := w.TotalLength()
	require.NoError(t, err)
	assert.Equal(t, workout.Duration{Seconds: 600 + 5*120 + 300}, total)

	require.Len(t, w.Instructions, 2)
	assert.Equal(t, workout.Duration{Seconds: 300}, w.Instructions[0].Offset)
	assert.Equal(t, total, w.Instructions[1].Offset)
	assert.NoError(t, w.Validate())
}

func TestToIntervals_DefaultsForMissingLengths(t *testing.T) {
	blocks := []Block{{Type: BlockSteady, Duration: 120}, {Type: BlockInterval}}
	intervals, instructions := ToIntervals(blocks, workout.LengthTypeDistance)
	assert.Empty(t, instructions)
	require.Len(t, intervals, 2)

	steady := intervals[0].(workout.Steady)
	assert.Equal(t, workout.Distance{Meters: workout.DefaultDistanceMeters}, steady.Length)
	assert.Equal(t, workout.DefaultIntensity, steady.Intensity)

	rep := intervals[1].(workout.Repetition)
	assert.Equal(t, workout.DefaultRepeat, rep.Repeat)
	assert.Equal(t, workout.Distance{Meters: workout.DefaultOnMeters}, rep.OnLength)
	assert.Equal(t, workout.Distance{Meters: workout.DefaultOffMeters}, rep.OffLength)
}

func TestBlocksToWorkout_MessagesWithoutIntervals(t *testing.T) {
	w, err := BlocksToWorkout(ParseBikeText(`message "Only words" 0:10`, 200, 75), workout.SportTypeBike, workout.LengthTypeTime)
	require.NoError(t, err)
	assert.Empty(t, w.Intervals)
	assert.Empty(t, w.Instructions)
	assert.NoError(t, w.Validate())
}
