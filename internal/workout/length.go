package workout

import (
	"errors"
	"fmt"
)

// LengthType fixes which Length variant every interval of a workout uses
type LengthType string

const (
	LengthTypeTime     LengthType = "time"
	LengthTypeDistance LengthType = "distance"
)

// ErrLengthMismatch is returned when a Duration and a Distance meet in one calculation
var ErrLengthMismatch = errors.New("length type mismatch")

// ParseLengthType accepts "time" or "distance"
func ParseLengthType(s string) (LengthType, error) {
	switch LengthType(s) {
	case LengthTypeTime, LengthTypeDistance:
		return LengthType(s), nil
	}
	return "", fmt.Errorf("unknown length type %q", s)
}

// Length is either a Duration or a Distance. The interface is sealed.
type Length interface {
	// Value returns seconds for a Duration and meters for a Distance
	Value() float64
	Type() LengthType
	withValue(v float64) Length
}

// Duration is a length of time in seconds
type Duration struct {
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

func (d Duration) Value() float64             { return d.Seconds }
func (d Duration) Type() LengthType           { return LengthTypeTime }
func (d Duration) withValue(v float64) Length { return Duration{Seconds: v} }
func (d Duration) String() string             { return fmt.Sprintf("%gs", d.Seconds) }

// Distance is a length of ground covered in meters
type Distance struct {
	Meters float64 `json:"meters" yaml:"meters"`
}

func (d Distance) Value() float64             { return d.Meters }
func (d Distance) Type() LengthType           { return LengthTypeDistance }
func (d Distance) withValue(v float64) Length { return Distance{Meters: v} }
func (d Distance) String() string             { return fmt.Sprintf("%gm", d.Meters) }

// ZeroLength returns the zero value of the variant used by lengthType
func ZeroLength(lengthType LengthType) Length {
	if lengthType == LengthTypeDistance {
		return Distance{}
	}
	return Duration{}
}

// NewLength builds the variant used by lengthType holding v
func NewLength(lengthType LengthType, v float64) Length {
	return ZeroLength(lengthType).withValue(v)
}

// AddLength sums two lengths of the same variant
func AddLength(a, b Length) (Length, error) {
	if a.Type() != b.Type() {
		return nil, fmt.Errorf("add %s to %s: %w", b.Type(), a.Type(), ErrLengthMismatch)
	}
	return a.withValue(a.Value() + b.Value()), nil
}

// ScaleLength multiplies a length by factor, keeping its variant
func ScaleLength(l Length, factor float64) Length {
	return l.withValue(l.Value() * factor)
}
