package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline(t *testing.T) {
	f := NewFactory(LengthTypeTime)
	intervals := []Interval{
		f.Ramp(RampFields{Length: Duration{Seconds: 100}, StartIntensity: 0.5, EndIntensity: 1.0}),
		f.Repetition(RepetitionFields{Repeat: 2, OnLength: Duration{Seconds: 30}, OffLength: Duration{Seconds: 60}, OnIntensity: 1.2, OffIntensity: 0.5, OnCadence: 100}),
		f.Free(FreeFields{Length: Duration{Seconds: 50}}),
	}
	tl, err := NewTimeline(intervals, LengthTypeTime)
	require.NoError(t, err)
	assert.Equal(t, 330.0, tl.Total)
	require.Len(t, tl.Spans, 3)
	assert.Equal(t, 100.0, tl.Spans[1].Start)
	assert.Equal(t, 280.0, tl.Spans[1].End)

	target, ok := tl.TargetAt(50)
	require.True(t, ok)
	assert.InDelta(t, 0.75, target.Intensity, 1e-9)

	target, _ = tl.TargetAt(195) // second cycle, on phase
	assert.Equal(t, 1.2, target.Intensity)
	assert.Equal(t, 100, target.Cadence)

	target, _ = tl.TargetAt(250) // second cycle, off phase
	assert.Equal(t, 0.5, target.Intensity)

	target, _ = tl.TargetAt(330)
	assert.True(t, target.Free)
	assert.Equal(t, 2, target.SpanIndex)

	_, ok = tl.TargetAt(331)
	assert.False(t, ok)
}

func TestTimeline_RejectsMixedLengths(t *testing.T) {
	intervals := []Interval{NewFactory(LengthTypeDistance).Steady(SteadyFields{})}
	_, err := NewTimeline(intervals, LengthTypeTime)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
