package workout

import (
	"fmt"
	"math"
)

// IntervalType is the discriminator of the Interval union
type IntervalType string

const (
	IntervalTypeSteady     IntervalType = "steady"
	IntervalTypeRamp       IntervalType = "ramp"
	IntervalTypeFree       IntervalType = "free"
	IntervalTypeRepetition IntervalType = "repetition"
)

// Interval is one contiguous segment of a workout. Implementations are the value types
// Steady, Ramp, Free and Repetition; the interface is sealed so a type switch over those
// four is exhaustive.
type Interval interface {
	IntervalID() string
	Type() IntervalType
	withID(id string) Interval
}

// Steady holds a constant intensity for its whole length
type Steady struct {
	ID        string
	Length    Length
	Intensity float64 // fraction of FTP (bike) or of pace speed (run)
	Cadence   int     // 0 means unspecified
	Pace      Pace
}

// Ramp moves linearly from StartIntensity to EndIntensity
type Ramp struct {
	ID             string
	Length         Length
	StartIntensity float64
	EndIntensity   float64
	Cadence        int
	Pace           Pace
}

// Free is a free ride/run with no target
type Free struct {
	ID      string
	Length  Length
	Cadence int
}

// Repetition alternates an on and an off effort Repeat times
type Repetition struct {
	ID           string
	Repeat       int
	OnLength     Length
	OffLength    Length
	OnIntensity  float64
	OffIntensity float64
	OnCadence    int
	OffCadence   int
	Pace         Pace
}

func (s Steady) IntervalID() string     { return s.ID }
func (r Ramp) IntervalID() string       { return r.ID }
func (f Free) IntervalID() string       { return f.ID }
func (r Repetition) IntervalID() string { return r.ID }

func (Steady) Type() IntervalType     { return IntervalTypeSteady }
func (Ramp) Type() IntervalType       { return IntervalTypeRamp }
func (Free) Type() IntervalType       { return IntervalTypeFree }
func (Repetition) Type() IntervalType { return IntervalTypeRepetition }

func (s Steady) withID(id string) Interval     { s.ID = id; return s }
func (r Ramp) withID(id string) Interval       { r.ID = id; return r }
func (f Free) withID(id string) Interval       { f.ID = id; return f }
func (r Repetition) withID(id string) Interval { r.ID = id; return r }

// IntervalLength returns the stored length of an interval in its own variant. A repetition
// covers Repeat * (OnLength + OffLength).
func IntervalLength(iv Interval) (Length, error) {
	switch v := iv.(type) {
	case Steady:
		return v.Length, nil
	case Ramp:
		return v.Length, nil
	case Free:
		return v.Length, nil
	case Repetition:
		sum, err := AddLength(v.OnLength, v.OffLength)
		if err != nil {
			return nil, fmt.Errorf("repetition %s: %w", v.ID, err)
		}
		return ScaleLength(sum, float64(v.Repeat)), nil
	}
	panic(fmt.Sprintf("workout: unknown interval type %T", iv))
}

// IntervalLengthType returns the variant used by the interval's lengths
func IntervalLengthType(iv Interval) LengthType {
	switch v := iv.(type) {
	case Steady:
		return v.Length.Type()
	case Ramp:
		return v.Length.Type()
	case Free:
		return v.Length.Type()
	case Repetition:
		return v.OnLength.Type()
	}
	panic(fmt.Sprintf("workout: unknown interval type %T", iv))
}

// ValidateInterval checks the per-variant invariants against the workout's length type.
// Lengths must be positive and finite; intensities of non-free intervals likewise.
func ValidateInterval(iv Interval, lengthType LengthType) error {
	switch v := iv.(type) {
	case Steady:
		if !positive(v.Intensity) {
			return fmt.Errorf("steady %s: intensity must be positive, got %g", v.ID, v.Intensity)
		}
		return checkLengths(v.ID, lengthType, v.Length)
	case Ramp:
		if !positive(v.StartIntensity) || !positive(v.EndIntensity) {
			return fmt.Errorf("ramp %s: intensities must be positive, got %g-%g", v.ID, v.StartIntensity, v.EndIntensity)
		}
		return checkLengths(v.ID, lengthType, v.Length)
	case Free:
		return checkLengths(v.ID, lengthType, v.Length)
	case Repetition:
		if v.Repeat < 1 {
			return fmt.Errorf("repetition %s: repeat must be at least 1, got %d", v.ID, v.Repeat)
		}
		if !positive(v.OnIntensity) || !positive(v.OffIntensity) {
			return fmt.Errorf("repetition %s: intensities must be positive, got %g/%g", v.ID, v.OnIntensity, v.OffIntensity)
		}
		return checkLengths(v.ID, lengthType, v.OnLength, v.OffLength)
	}
	panic(fmt.Sprintf("workout: unknown interval type %T", iv))
}

// positive is false for NaN and infinities
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func checkLengths(id string, lengthType LengthType, lengths ...Length) error {
	for _, l := range lengths {
		if l == nil {
			return fmt.Errorf("interval %s: missing length", id)
		}
		if l.Type() != lengthType {
			return fmt.Errorf("interval %s uses %s in a %s workout: %w", id, l.Type(), lengthType, ErrLengthMismatch)
		}
		if !positive(l.Value()) {
			return fmt.Errorf("interval %s: length must be positive, got %v", id, l)
		}
	}
	return nil
}
