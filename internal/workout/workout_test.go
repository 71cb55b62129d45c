package workout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryDefaults(t *testing.T) {
	f := NewFactory(LengthTypeTime)

	s := f.Steady(SteadyFields{})
	assert.Equal(t, Duration{Seconds: 300}, s.Length)
	assert.Equal(t, 1.0, s.Intensity)
	assert.Equal(t, PaceOneMile, s.Pace)
	assert.Equal(t, 0, s.Cadence)
	assert.NotEmpty(t, s.ID)

	r := f.Repetition(RepetitionFields{Repeat: 5, OnIntensity: 1.2})
	assert.Equal(t, 5, r.Repeat)
	assert.Equal(t, 1.2, r.OnIntensity)
	assert.Equal(t, DefaultOffIntensity, r.OffIntensity)

	d := NewFactory(LengthTypeDistance).Free(FreeFields{})
	assert.Equal(t, Distance{Meters: DefaultDistanceMeters}, d.Length)
}

func TestFactoryMintsUniqueIDs(t *testing.T) {
	f := NewFactory(LengthTypeTime)
	a, b := f.Steady(SteadyFields{}), f.Steady(SteadyFields{})
	assert.NotEqual(t, a.ID, b.ID)

	c := Clone(a)
	assert.NotEqual(t, a.ID, c.IntervalID())
	cs := c.(Steady)
	cs.ID = a.ID
	assert.Equal(t, a, cs)
}

func TestTotalLength(t *testing.T) {
	f := NewFactory(LengthTypeTime)
	intervals := []Interval{
		f.Steady(SteadyFields{Length: Duration{Seconds: 60}}),
		f.Repetition(RepetitionFields{Repeat: 4, OnLength: Duration{Seconds: 30}, OffLength: Duration{Seconds: 90}}),
	}
	total, err := TotalLength(intervals, LengthTypeTime)
	require.NoError(t, err)
	assert.Equal(t, Duration{Seconds: 540}, total)

	_, err = TotalLength(append(intervals, NewFactory(LengthTypeDistance).Free(FreeFields{})), LengthTypeTime)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestValidate(t *testing.T) {
	w := CreateEmptyWorkout(SportTypeRun, LengthTypeDistance)
	f := NewFactory(w.LengthType)
	w.Intervals = []Interval{f.Steady(SteadyFields{})}
	w.Instructions = []Instruction{f.Instruction("hi", Distance{Meters: 500})}
	require.NoError(t, w.Validate())

	w.Instructions = []Instruction{f.Instruction("late", Distance{Meters: 1500})}
	assert.ErrorIs(t, w.Validate(), ErrInstructionOutOfRange)

	w.Instructions = []Instruction{f.Instruction("wrong unit", Duration{Seconds: 10})}
	assert.ErrorIs(t, w.Validate(), ErrLengthMismatch)

	w.Instructions = nil
	w.Intervals = []Interval{Steady{ID: "x", Length: Distance{Meters: 10}, Intensity: 0}}
	assert.Error(t, w.Validate())

	w.Intervals = nil
	w.Instructions = []Instruction{f.Instruction("alone", Distance{Meters: 0})}
	assert.ErrorIs(t, w.Validate(), ErrInstructionOutOfRange)
}

func TestValidateInterval_Bounds(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
	}{
		{"zero length", Steady{ID: "a", Length: Duration{Seconds: 0}, Intensity: 1}},
		{"negative length", Free{ID: "b", Length: Duration{Seconds: -60}}},
		{"NaN length", Free{ID: "c", Length: Duration{Seconds: math.NaN()}}},
		{"infinite length", Ramp{ID: "d", Length: Duration{Seconds: math.Inf(1)}, StartIntensity: 0.5, EndIntensity: 0.7}},
		{"NaN intensity", Steady{ID: "e", Length: Duration{Seconds: 60}, Intensity: math.NaN()}},
		{"infinite intensity", Ramp{ID: "f", Length: Duration{Seconds: 60}, StartIntensity: 0.5, EndIntensity: math.Inf(1)}},
		{"zero repeat", Repetition{ID: "g", OnLength: Duration{Seconds: 30}, OffLength: Duration{Seconds: 30}, OnIntensity: 1.2, OffIntensity: 0.5}},
		{"zero off intensity", Repetition{ID: "h", Repeat: 2, OnLength: Duration{Seconds: 30}, OffLength: Duration{Seconds: 30}, OnIntensity: 1.2}},
		{"zero off length", Repetition{ID: "i", Repeat: 2, OnLength: Duration{Seconds: 30}, OffLength: Duration{}, OnIntensity: 1.2, OffIntensity: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateInterval(tt.iv, LengthTypeTime))
		})
	}

	f := NewFactory(LengthTypeTime)
	for _, typ := range []IntervalType{IntervalTypeSteady, IntervalTypeRamp, IntervalTypeFree, IntervalTypeRepetition} {
		iv, ok := f.Default(typ)
		require.True(t, ok)
		assert.NoError(t, ValidateInterval(iv, LengthTypeTime), typ)
	}
}

func TestCreateEmptyWorkout(t *testing.T) {
	w := CreateEmptyWorkout(SportTypeBike, LengthTypeDistance)
	assert.Equal(t, LengthTypeTime, w.LengthType, "bike workouts are always timed")
	assert.Empty(t, w.Intervals)
	assert.NotNil(t, w.Tags)

	r := CreateEmptyWorkout(SportTypeRun, LengthTypeDistance)
	assert.Equal(t, LengthTypeDistance, r.LengthType)
}

func TestZoneFor(t *testing.T) {
	assert.Equal(t, "Z1", ZoneFor(0.05).Name)
	assert.Equal(t, "Z2", ZoneFor(0.6).Name)
	assert.Equal(t, "Z4", ZoneFor(1.0).Name)
	assert.Equal(t, "Z6", ZoneFor(20).Name)
	assert.Equal(t, 0.1, MinIntensity)
}

func TestPace(t *testing.T) {
	for _, p := range AllPaces {
		parsed, ok := ParsePace(p.String())
		require.True(t, ok)
		assert.Equal(t, p, parsed)
	}
	_, ok := ParsePace("3K")
	assert.False(t, ok)
	assert.Equal(t, 21097.5, PaceHalfMarathon.ReferenceDistance())
}
