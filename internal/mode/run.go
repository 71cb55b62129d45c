package mode

import (
	"fmt"

	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// RunningTimes holds the runner's completion time in seconds for each reference pace,
// indexed by workout.Pace
type RunningTimes [5]float64

// DefaultRunningTimes is a 6:00 mile, 20:00 5K, 42:00 10K, 1:33 half and 3:15 marathon
var DefaultRunningTimes = RunningTimes{360, 1200, 2520, 5580, 11700}

// RunMode scales intensities by the speed implied by a reference pace
type RunMode struct {
	RunningTimes      RunningTimes
	Length            workout.LengthType
	TimePrecision     float64 // seconds
	DistancePrecision float64 // meters
}

// NewRunMode returns a run mode with default pixel rounding
func NewRunMode(times RunningTimes, lengthType workout.LengthType) RunMode {
	return RunMode{
		RunningTimes:      times,
		Length:            lengthType,
		TimePrecision:     DefaultTimePrecision,
		DistancePrecision: DefaultDistancePrecision,
	}
}

func (RunMode) Name() string                        { return "run" }
func (RunMode) SportType() workout.SportType        { return workout.SportTypeRun }
func (m RunMode) LengthType() workout.LengthType    { return m.Length }
func (RunMode) IntensityToHeight(i float64) float64 { return IntensityToHeight(i) }
func (RunMode) HeightToIntensity(h float64) float64 { return HeightToIntensity(h) }

// Speed returns meters per second for intensity relative to pace
func (m RunMode) Speed(intensity float64, pace workout.Pace) float64 {
	if !pace.Valid() {
		pace = workout.PaceOneMile
	}
	t := m.RunningTimes[pace]
	if t <= 0 {
		return 0
	}
	return pace.ReferenceDistance() / t * intensity
}

// Distance converts a duration into the distance covered; distances pass through
func (m RunMode) Distance(l workout.Length, intensity float64, pace workout.Pace) (workout.Distance, error) {
	switch v := l.(type) {
	case workout.Distance:
		return v, nil
	case workout.Duration:
		return workout.Distance{Meters: m.Speed(intensity, pace) * v.Seconds}, nil
	}
	return workout.Distance{}, fmt.Errorf("run mode: unsupported length %T", l)
}

// Duration converts a distance into the time taken; durations pass through
func (m RunMode) Duration(l workout.Length, intensity float64, pace workout.Pace) (workout.Duration, error) {
	switch v := l.(type) {
	case workout.Duration:
		return v, nil
	case workout.Distance:
		speed := m.Speed(intensity, pace)
		if speed <= 0 {
			return workout.Duration{}, fmt.Errorf("run mode: no speed for intensity %g at pace %s", intensity, pace)
		}
		return workout.Duration{Seconds: v.Meters / speed}, nil
	}
	return workout.Duration{}, fmt.Errorf("run mode: unsupported length %T", l)
}

// IntervalDuration uses the mean intensity for ramps. Free intervals have no speed
// reference and fail.
func (m RunMode) IntervalDuration(iv workout.Interval) (workout.Duration, error) {
	switch v := iv.(type) {
	case workout.Steady:
		return m.Duration(v.Length, v.Intensity, v.Pace)
	case workout.Ramp:
		return m.Duration(v.Length, (v.StartIntensity+v.EndIntensity)/2, v.Pace)
	case workout.Free:
		return workout.Duration{}, &ModeError{Mode: m.Name(), Op: "IntervalDuration", Detail: "free interval has no speed reference"}
	case workout.Repetition:
		on, err := m.Duration(v.OnLength, v.OnIntensity, v.Pace)
		if err != nil {
			return workout.Duration{}, err
		}
		off, err := m.Duration(v.OffLength, v.OffIntensity, v.Pace)
		if err != nil {
			return workout.Duration{}, err
		}
		return workout.Duration{Seconds: float64(v.Repeat) * (on.Seconds + off.Seconds)}, nil
	}
	panic(fmt.Sprintf("mode: unknown interval type %T", iv))
}

func (m RunMode) IntervalDistance(iv workout.Interval) (workout.Distance, error) {
	switch v := iv.(type) {
	case workout.Steady:
		return m.Distance(v.Length, v.Intensity, v.Pace)
	case workout.Ramp:
		return m.Distance(v.Length, (v.StartIntensity+v.EndIntensity)/2, v.Pace)
	case workout.Free:
		return workout.Distance{}, &ModeError{Mode: m.Name(), Op: "IntervalDistance", Detail: "free interval has no speed reference"}
	case workout.Repetition:
		on, err := m.Distance(v.OnLength, v.OnIntensity, v.Pace)
		if err != nil {
			return workout.Distance{}, err
		}
		off, err := m.Distance(v.OffLength, v.OffIntensity, v.Pace)
		if err != nil {
			return workout.Distance{}, err
		}
		return workout.Distance{Meters: float64(v.Repeat) * (on.Meters + off.Meters)}, nil
	}
	panic(fmt.Sprintf("mode: unknown interval type %T", iv))
}

func (m RunMode) LengthFromDuration(d workout.Duration, intensity float64, pace workout.Pace) (workout.Length, error) {
	if m.Length == workout.LengthTypeDistance {
		return m.Distance(d, intensity, pace)
	}
	return d, nil
}

func (m RunMode) LengthToWidth(l workout.Length) (float64, error) {
	switch v := l.(type) {
	case workout.Duration:
		return v.Seconds / secondsPerPixel, nil
	case workout.Distance:
		return v.Meters / metersPerPixel, nil
	}
	return 0, fmt.Errorf("run mode: unsupported length %T", l)
}

// WidthToLength converts pixels into the mode's length type, rounded to the matching precision
func (m RunMode) WidthToLength(width float64) workout.Length {
	if m.Length == workout.LengthTypeDistance {
		return workout.Distance{Meters: roundTo(width*metersPerPixel, m.DistancePrecision)}
	}
	return workout.Duration{Seconds: roundTo(width*secondsPerPixel, m.TimePrecision)}
}
