package workout

import "github.com/google/uuid"

// Defaults applied by Factory to zero-valued fields
const (
	DefaultDurationSeconds = 300
	DefaultDistanceMeters  = 1000
	DefaultIntensity       = 1.0
	DefaultRampStart       = 0.5
	DefaultRampEnd         = 0.75
	DefaultRepeat          = 3
	DefaultOnSeconds       = 30
	DefaultOffSeconds      = 30
	DefaultOnMeters        = 400
	DefaultOffMeters       = 200
	DefaultOffIntensity    = 0.5
)

// NewID mints an opaque interval or instruction id
func NewID() string {
	return uuid.NewString()
}

// SteadyFields are the caller-supplied fields of a Steady; zero values take defaults
type SteadyFields struct {
	Length    Length
	Intensity float64
	Cadence   int
	Pace      Pace
}

// RampFields are the caller-supplied fields of a Ramp; zero values take defaults
type RampFields struct {
	Length         Length
	StartIntensity float64
	EndIntensity   float64
	Cadence        int
	Pace           Pace
}

// FreeFields are the caller-supplied fields of a Free; zero values take defaults
type FreeFields struct {
	Length  Length
	Cadence int
}

// RepetitionFields are the caller-supplied fields of a Repetition; zero values take defaults
type RepetitionFields struct {
	Repeat       int
	OnLength     Length
	OffLength    Length
	OnIntensity  float64
	OffIntensity float64
	OnCadence    int
	OffCadence   int
	Pace         Pace
}

// Factory builds intervals for one length type, filling defaults and minting ids
type Factory struct {
	LengthType LengthType
}

// NewFactory returns a factory producing lengths of lengthType
func NewFactory(lengthType LengthType) Factory {
	return Factory{LengthType: lengthType}
}

func (f Factory) lengthOr(l Length, seconds, meters float64) Length {
	if l != nil {
		return l
	}
	if f.LengthType == LengthTypeDistance {
		return Distance{Meters: meters}
	}
	return Duration{Seconds: seconds}
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func (f Factory) Steady(fields SteadyFields) Steady {
	return Steady{
		ID:        NewID(),
		Length:    f.lengthOr(fields.Length, DefaultDurationSeconds, DefaultDistanceMeters),
		Intensity: orFloat(fields.Intensity, DefaultIntensity),
		Cadence:   fields.Cadence,
		Pace:      fields.Pace,
	}
}

func (f Factory) Ramp(fields RampFields) Ramp {
	return Ramp{
		ID:             NewID(),
		Length:         f.lengthOr(fields.Length, DefaultDurationSeconds, DefaultDistanceMeters),
		StartIntensity: orFloat(fields.StartIntensity, DefaultRampStart),
		EndIntensity:   orFloat(fields.EndIntensity, DefaultRampEnd),
		Cadence:        fields.Cadence,
		Pace:           fields.Pace,
	}
}

func (f Factory) Free(fields FreeFields) Free {
	return Free{
		ID:      NewID(),
		Length:  f.lengthOr(fields.Length, DefaultDurationSeconds, DefaultDistanceMeters),
		Cadence: fields.Cadence,
	}
}

func (f Factory) Repetition(fields RepetitionFields) Repetition {
	repeat := fields.Repeat
	if repeat < 1 {
		repeat = DefaultRepeat
	}
	return Repetition{
		ID:           NewID(),
		Repeat:       repeat,
		OnLength:     f.lengthOr(fields.OnLength, DefaultOnSeconds, DefaultOnMeters),
		OffLength:    f.lengthOr(fields.OffLength, DefaultOffSeconds, DefaultOffMeters),
		OnIntensity:  orFloat(fields.OnIntensity, DefaultIntensity),
		OffIntensity: orFloat(fields.OffIntensity, DefaultOffIntensity),
		OnCadence:    fields.OnCadence,
		OffCadence:   fields.OffCadence,
		Pace:         fields.Pace,
	}
}

// Default returns a default interval of the given type
func (f Factory) Default(t IntervalType) (Interval, bool) {
	switch t {
	case IntervalTypeSteady:
		return f.Steady(SteadyFields{}), true
	case IntervalTypeRamp:
		return f.Ramp(RampFields{}), true
	case IntervalTypeFree:
		return f.Free(FreeFields{}), true
	case IntervalTypeRepetition:
		return f.Repetition(RepetitionFields{}), true
	}
	return nil, false
}

// Instruction builds an instruction with a fresh id
func (f Factory) Instruction(text string, offset Length) Instruction {
	if offset == nil {
		offset = ZeroLength(f.LengthType)
	}
	return Instruction{ID: NewID(), Text: text, Offset: offset}
}

// Clone copies every field of iv under a new id
func Clone(iv Interval) Interval {
	return iv.withID(NewID())
}
