// Package mode converts between abstract workout values (intensity, length) and the
// physical units of a sport: watts and w/kg for cycling, speed and distance for running.
package mode

import (
	"errors"
	"fmt"
	"math"

	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// ErrModeMismatch matches every *ModeError
var ErrModeMismatch = errors.New("mode mismatch")

// ModeError reports an operation that the active mode cannot perform, e.g. asking a bike
// mode for a distance. It signals a caller bug, not bad user input.
type ModeError struct {
	Mode   string
	Op     string
	Detail string
}

func (e *ModeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s mode: %s not supported", e.Mode, e.Op)
	}
	return fmt.Sprintf("%s mode: %s not supported: %s", e.Mode, e.Op, e.Detail)
}

func (e *ModeError) Is(target error) bool {
	return target == ErrModeMismatch
}

// Pixel scales for the visual editor. intensityScale is a power of two so that
// HeightToIntensity(IntensityToHeight(x)) == x holds exactly.
const (
	secondsPerPixel = 3
	metersPerPixel  = 10
	intensityScale  = 256

	DefaultTimePrecision     = 5   // seconds
	DefaultDistancePrecision = 200 // meters
)

// Mode is implemented by BikeMode and RunMode
type Mode interface {
	Name() string
	SportType() workout.SportType
	LengthType() workout.LengthType

	// IntervalDuration returns how long the interval takes
	IntervalDuration(iv workout.Interval) (workout.Duration, error)
	// IntervalDistance returns how far the interval goes. Run only.
	IntervalDistance(iv workout.Interval) (workout.Distance, error)
	// LengthFromDuration expresses d in the mode's length type
	LengthFromDuration(d workout.Duration, intensity float64, pace workout.Pace) (workout.Length, error)

	LengthToWidth(l workout.Length) (float64, error)
	WidthToLength(width float64) workout.Length
	IntensityToHeight(intensity float64) float64
	HeightToIntensity(height float64) float64
}

// IntensityToHeight is shared by both modes
func IntensityToHeight(intensity float64) float64 {
	return intensity * intensityScale
}

// HeightToIntensity is the exact inverse of IntensityToHeight
func HeightToIntensity(height float64) float64 {
	return height / intensityScale
}

func roundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// ForWorkout returns the mode matching w's sport type
func ForWorkout(w workout.Workout, bike BikeMode, run RunMode) Mode {
	if w.SportType == workout.SportTypeRun {
		run.Length = w.LengthType
		return run
	}
	return bike
}

// CheckWorkout reports a *ModeError when w was built for a different sport or length type
func CheckWorkout(m Mode, w workout.Workout) error {
	if w.SportType != "" && w.SportType != m.SportType() {
		return &ModeError{Mode: m.Name(), Op: "workout", Detail: fmt.Sprintf("sport type %q", w.SportType)}
	}
	if w.LengthType != "" && w.LengthType != m.LengthType() {
		return &ModeError{Mode: m.Name(), Op: "workout", Detail: fmt.Sprintf("length type %q", w.LengthType)}
	}
	return nil
}
