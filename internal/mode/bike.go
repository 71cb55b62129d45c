package mode

import (
	"fmt"
	"math"

	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// BikeMode scales intensities by the rider's FTP. All lengths are durations.
type BikeMode struct {
	FTP           float64 // watts
	Weight        float64 // kg
	TimePrecision float64 // seconds, WidthToLength rounding
}

// NewBikeMode returns a bike mode with default pixel rounding
func NewBikeMode(ftp, weight float64) BikeMode {
	return BikeMode{FTP: ftp, Weight: weight, TimePrecision: DefaultTimePrecision}
}

func (BikeMode) Name() string                        { return "bike" }
func (BikeMode) SportType() workout.SportType        { return workout.SportTypeBike }
func (BikeMode) LengthType() workout.LengthType      { return workout.LengthTypeTime }
func (BikeMode) IntensityToHeight(i float64) float64 { return IntensityToHeight(i) }
func (BikeMode) HeightToIntensity(h float64) float64 { return HeightToIntensity(h) }

// Power returns the target in whole watts
func (m BikeMode) Power(intensity float64) int {
	return int(math.Round(intensity * m.FTP))
}

// Wkg returns the target in watts per kilogram rounded to one decimal
func (m BikeMode) Wkg(intensity float64) float64 {
	if m.Weight <= 0 {
		return 0
	}
	return math.Round(float64(m.Power(intensity))/m.Weight*10) / 10
}

// Percentage returns the target as a whole percentage of FTP
func (m BikeMode) Percentage(intensity float64) int {
	return int(math.Round(intensity * 100))
}

// IntensityFromPower converts watts into a fraction of FTP
func (m BikeMode) IntensityFromPower(watts float64) float64 {
	if m.FTP <= 0 {
		return 0
	}
	return watts / m.FTP
}

// IntensityFromWkg converts watts per kilogram into a fraction of FTP
func (m BikeMode) IntensityFromWkg(wkg float64) float64 {
	return m.IntensityFromPower(wkg * m.Weight)
}

func (m BikeMode) seconds(op string, l workout.Length) (float64, error) {
	d, ok := l.(workout.Duration)
	if !ok {
		return 0, &ModeError{Mode: m.Name(), Op: op, Detail: fmt.Sprintf("length %v is not a duration", l)}
	}
	return d.Seconds, nil
}

func (m BikeMode) IntervalDuration(iv workout.Interval) (workout.Duration, error) {
	const op = "IntervalDuration"
	switch v := iv.(type) {
	case workout.Steady:
		s, err := m.seconds(op, v.Length)
		return workout.Duration{Seconds: s}, err
	case workout.Ramp:
		s, err := m.seconds(op, v.Length)
		return workout.Duration{Seconds: s}, err
	case workout.Free:
		s, err := m.seconds(op, v.Length)
		return workout.Duration{Seconds: s}, err
	case workout.Repetition:
		on, err := m.seconds(op, v.OnLength)
		if err != nil {
			return workout.Duration{}, err
		}
		off, err := m.seconds(op, v.OffLength)
		if err != nil {
			return workout.Duration{}, err
		}
		return workout.Duration{Seconds: float64(v.Repeat) * (on + off)}, nil
	}
	panic(fmt.Sprintf("mode: unknown interval type %T", iv))
}

func (m BikeMode) IntervalDistance(workout.Interval) (workout.Distance, error) {
	return workout.Distance{}, &ModeError{Mode: m.Name(), Op: "IntervalDistance"}
}

func (m BikeMode) LengthFromDuration(d workout.Duration, _ float64, _ workout.Pace) (workout.Length, error) {
	return d, nil
}

func (m BikeMode) LengthToWidth(l workout.Length) (float64, error) {
	s, err := m.seconds("LengthToWidth", l)
	if err != nil {
		return 0, err
	}
	return s / secondsPerPixel, nil
}

// WidthToLength converts pixels back into seconds rounded to TimePrecision
func (m BikeMode) WidthToLength(width float64) workout.Length {
	return workout.Duration{Seconds: roundTo(width*secondsPerPixel, m.TimePrecision)}
}
