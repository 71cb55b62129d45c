package workout

import (
	"errors"
	"fmt"
	"slices"
)

// SportType selects the conversion mode of a workout
type SportType string

const (
	SportTypeBike SportType = "bike"
	SportTypeRun  SportType = "run"
)

// ParseSportType accepts "bike" or "run"
func ParseSportType(s string) (SportType, error) {
	switch SportType(s) {
	case SportTypeBike, SportTypeRun:
		return SportType(s), nil
	}
	return "", fmt.Errorf("unknown sport type %q", s)
}

// ErrInstructionOutOfRange is returned when an instruction offset lies outside the workout
var ErrInstructionOutOfRange = errors.New("instruction offset outside workout")

// Instruction is a text message shown at Offset into the workout
type Instruction struct {
	ID     string
	Text   string
	Offset Length
}

// Workout is a structured workout definition. Intervals execute in slice order.
// Intervals and Instructions are replaced, never modified in place.
type Workout struct {
	Author       string
	Name         string
	Description  string
	SportType    SportType
	LengthType   LengthType
	Tags         []string
	Intervals    []Interval
	Instructions []Instruction
}

// CreateEmptyWorkout returns a workout with no intervals for the given sport and length type
func CreateEmptyWorkout(sportType SportType, lengthType LengthType) Workout {
	if sportType == SportTypeBike {
		lengthType = LengthTypeTime
	}
	return Workout{
		Author:       "",
		Name:         "",
		Description:  "",
		SportType:    sportType,
		LengthType:   lengthType,
		Tags:         []string{},
		Intervals:    []Interval{},
		Instructions: []Instruction{},
	}
}

// Copy returns a workout whose slices do not alias w's
func (w Workout) Copy() Workout {
	w.Tags = slices.Clone(w.Tags)
	w.Intervals = slices.Clone(w.Intervals)
	w.Instructions = slices.Clone(w.Instructions)
	return w
}

// TotalLength sums the stored lengths of all intervals
func TotalLength(intervals []Interval, lengthType LengthType) (Length, error) {
	total := ZeroLength(lengthType)
	for _, iv := range intervals {
		l, err := IntervalLength(iv)
		if err != nil {
			return nil, err
		}
		if total, err = AddLength(total, l); err != nil {
			return nil, fmt.Errorf("interval %s: %w", iv.IntervalID(), err)
		}
	}
	return total, nil
}

// TotalLength sums the stored lengths of all intervals of w
func (w Workout) TotalLength() (Length, error) {
	return TotalLength(w.Intervals, w.LengthType)
}

// Validate checks every interval invariant and that instructions fall inside the workout.
// A workout without intervals has no segment to carry instructions, so it must have none.
func (w Workout) Validate() error {
	for _, iv := range w.Intervals {
		if err := ValidateInterval(iv, w.LengthType); err != nil {
			return err
		}
	}
	total, err := w.TotalLength()
	if err != nil {
		return err
	}
	for _, in := range w.Instructions {
		if in.Offset == nil || in.Offset.Type() != w.LengthType {
			return fmt.Errorf("instruction %s: offset must be a %s length: %w", in.ID, w.LengthType, ErrLengthMismatch)
		}
		if len(w.Intervals) == 0 {
			return fmt.Errorf("instruction %s in a workout without intervals: %w", in.ID, ErrInstructionOutOfRange)
		}
		if err := CheckOffset(in.Offset, total); err != nil {
			return fmt.Errorf("instruction %s: %w", in.ID, err)
		}
	}
	return nil
}

// CheckOffset reports ErrInstructionOutOfRange unless offset lies in [0, total]
func CheckOffset(offset, total Length) error {
	if v := offset.Value(); !(v >= 0 && v <= total.Value()) {
		return fmt.Errorf("offset %v, workout length %v: %w", offset, total, ErrInstructionOutOfRange)
	}
	return nil
}
