package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeConverter treats every stored length as seconds, like a bike mode
type timeConverter struct{}

func (timeConverter) IntervalDuration(iv Interval) (Duration, error) {
	l, err := IntervalLength(iv)
	if err != nil {
		return Duration{}, err
	}
	return Duration{Seconds: l.Value()}, nil
}

func (timeConverter) LengthFromDuration(d Duration, _ float64, _ Pace) (Length, error) {
	return d, nil
}

func threeIntervals() []Interval {
	f := NewFactory(LengthTypeTime)
	return []Interval{
		f.Steady(SteadyFields{Length: Duration{Seconds: 60}, Intensity: 0.8}),
		f.Ramp(RampFields{}),
		f.Free(FreeFields{}),
	}
}

func TestUpdateIntervalDuration(t *testing.T) {
	intervals := threeIntervals()
	id := intervals[0].IntervalID()

	out := UpdateIntervalDuration(id, 30, intervals, timeConverter{})
	require.Len(t, out, 3)
	assert.Equal(t, Duration{Seconds: 90}, out[0].(Steady).Length)
	assert.Equal(t, id, out[0].IntervalID())
	// input untouched
	assert.Equal(t, Duration{Seconds: 60}, intervals[0].(Steady).Length)
}

func TestUpdateIntervalDuration_NoOps(t *testing.T) {
	intervals := threeIntervals()

	tests := []struct {
		name  string
		id    string
		delta float64
	}{
		{"would go negative", intervals[0].IntervalID(), -65},
		{"would reach zero", intervals[0].IntervalID(), -60},
		{"ramp is not resized", intervals[1].IntervalID(), 10},
		{"free is not resized", intervals[2].IntervalID(), 10},
		{"unknown id", "nope", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := UpdateIntervalDuration(tt.id, tt.delta, intervals, timeConverter{})
			assert.Equal(t, intervals, out)
		})
	}
}

func TestUpdateIntervalIntensity(t *testing.T) {
	intervals := threeIntervals()
	id := intervals[0].IntervalID()

	out := UpdateIntervalIntensity(id, 0.05, intervals)
	assert.InDelta(t, 0.85, out[0].(Steady).Intensity, 1e-9)

	assert.Equal(t, intervals, UpdateIntervalIntensity(id, -0.75, intervals), "below Z1 floor")
	assert.Equal(t, intervals, UpdateIntervalIntensity(intervals[1].IntervalID(), 0.1, intervals), "ramp")
	assert.Equal(t, intervals, UpdateIntervalIntensity("missing", 0.1, intervals))
}

func TestMoveInterval(t *testing.T) {
	intervals := threeIntervals()
	first, middle, last := intervals[0].IntervalID(), intervals[1].IntervalID(), intervals[2].IntervalID()

	out := MoveInterval(middle, 1, intervals)
	assert.Equal(t, []string{first, last, middle}, ids(out))

	out = MoveInterval(middle, -1, intervals)
	assert.Equal(t, []string{middle, first, last}, ids(out))

	assert.Equal(t, intervals, MoveInterval(first, -1, intervals))
	assert.Equal(t, intervals, MoveInterval(last, 1, intervals))
	assert.Equal(t, intervals, MoveInterval("missing", 1, intervals))
	assert.Equal(t, []string{first, middle, last}, ids(intervals))
}

func TestRemoveAndDuplicateInterval(t *testing.T) {
	intervals := threeIntervals()

	out := RemoveInterval(intervals[1].IntervalID(), intervals)
	assert.Equal(t, []string{intervals[0].IntervalID(), intervals[2].IntervalID()}, ids(out))
	assert.Len(t, intervals, 3)

	out = DuplicateInterval(intervals[0].IntervalID(), intervals)
	require.Len(t, out, 4)
	assert.NotEqual(t, out[0].IntervalID(), out[1].IntervalID())
	copied := out[1].(Steady)
	copied.ID = out[0].IntervalID()
	assert.Equal(t, out[0], Interval(copied))
}

func TestInstructionMutations(t *testing.T) {
	f := NewFactory(LengthTypeTime)
	total := Duration{Seconds: 600}

	instructions := AddInstruction(f.Instruction("go", Duration{Seconds: 900}), nil, total)
	require.Len(t, instructions, 1)
	assert.Equal(t, Duration{Seconds: 600}, instructions[0].Offset, "clamped to the end")

	id := instructions[0].ID
	updated := UpdateInstruction(id, "easy", Duration{Seconds: -5}, instructions, total)
	assert.Equal(t, "easy", updated[0].Text)
	assert.Equal(t, Duration{Seconds: 0}, updated[0].Offset)
	assert.Equal(t, "go", instructions[0].Text)

	assert.Empty(t, RemoveInstruction(id, updated))
	assert.Equal(t, updated, RemoveInstruction("missing", updated))
}

func TestClampInstructions(t *testing.T) {
	f := NewFactory(LengthTypeTime)
	instructions := []Instruction{
		f.Instruction("early", Duration{Seconds: 30}),
		f.Instruction("late", Duration{Seconds: 500}),
	}

	same := ClampInstructions(instructions, Duration{Seconds: 600})
	assert.Same(t, &instructions[0], &same[0])

	clamped := ClampInstructions(instructions, Duration{Seconds: 120})
	assert.Equal(t, Duration{Seconds: 30}, clamped[0].Offset)
	assert.Equal(t, Duration{Seconds: 120}, clamped[1].Offset)
	assert.Equal(t, Duration{Seconds: 500}, instructions[1].Offset)
}

func ids(intervals []Interval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.IntervalID()
	}
	return out
}
