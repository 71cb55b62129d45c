package workout

import (
	"fmt"
	"math"
)

// Span places one interval on the workout's running-total axis. Start and End are in the
// workout's length unit (seconds or meters).
type Span struct {
	Index    int
	Interval Interval
	Start    float64
	End      float64
}

// Contains reports whether offset falls in [Start, End)
func (s Span) Contains(offset float64) bool {
	return offset >= s.Start && offset < s.End
}

// Timeline is the left-to-right running-total walk over a workout's intervals
type Timeline struct {
	LengthType LengthType
	Spans      []Span
	Total      float64
}

// NewTimeline lays out intervals in order. Every interval must use lengthType.
func NewTimeline(intervals []Interval, lengthType LengthType) (Timeline, error) {
	tl := Timeline{LengthType: lengthType, Spans: make([]Span, 0, len(intervals))}
	var start float64
	for i, iv := range intervals {
		if IntervalLengthType(iv) != lengthType {
			return Timeline{}, fmt.Errorf("interval %s uses %s in a %s workout: %w",
				iv.IntervalID(), IntervalLengthType(iv), lengthType, ErrLengthMismatch)
		}
		l, err := IntervalLength(iv)
		if err != nil {
			return Timeline{}, err
		}
		end := start + l.Value()
		tl.Spans = append(tl.Spans, Span{Index: i, Interval: iv, Start: start, End: end})
		start = end
	}
	tl.Total = start
	return tl, nil
}

// SpanAt returns the span whose [Start, End) window contains offset. An offset equal to the
// total belongs to the last span.
func (tl Timeline) SpanAt(offset float64) (Span, bool) {
	for _, s := range tl.Spans {
		if s.Contains(offset) {
			return s, true
		}
	}
	if n := len(tl.Spans); n > 0 && offset == tl.Total {
		return tl.Spans[n-1], true
	}
	return Span{}, false
}

// Target is the prescribed effort at one point of the workout
type Target struct {
	SpanIndex int
	Intensity float64 // 0 for free intervals
	Cadence   int
	Free      bool
}

// TargetAt resolves the target at offset, interpolating ramps linearly and picking the on or
// off half of a repetition.
func (tl Timeline) TargetAt(offset float64) (Target, bool) {
	span, ok := tl.SpanAt(offset)
	if !ok {
		return Target{}, false
	}
	into := offset - span.Start
	t := Target{SpanIndex: span.Index}

	switch v := span.Interval.(type) {
	case Steady:
		t.Intensity = v.Intensity
		t.Cadence = v.Cadence
	case Ramp:
		t.Cadence = v.Cadence
		if length := span.End - span.Start; length > 0 {
			progress := into / length
			t.Intensity = v.StartIntensity + (v.EndIntensity-v.StartIntensity)*progress
		} else {
			t.Intensity = v.StartIntensity
		}
	case Free:
		t.Free = true
		t.Cadence = v.Cadence
	case Repetition:
		on, off := v.OnLength.Value(), v.OffLength.Value()
		pos := into
		if cycle := on + off; cycle > 0 {
			pos = math.Mod(into, cycle)
		}
		if pos < on {
			t.Intensity = v.OnIntensity
			t.Cadence = v.OnCadence
		} else {
			t.Intensity = v.OffIntensity
			t.Cadence = v.OffCadence
		}
	}
	return t, true
}
