package mode

import (
	"errors"

	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// Stats summarises a workout for display next to the editor
type Stats struct {
	Intervals        int              `json:"intervals"`
	TotalDuration    workout.Duration `json:"totalDuration"`
	TotalDistance    workout.Distance `json:"totalDistance"`    // run only
	AverageIntensity float64          `json:"averageIntensity"` // duration weighted, free intervals excluded
	StressScore      float64          `json:"stressScore"`      // bike only, TSS-style
}

// ComputeStats walks the intervals with m. Free intervals in run mode are skipped for time
// and distance because they carry no speed reference.
func ComputeStats(w workout.Workout, m Mode) (Stats, error) {
	st := Stats{Intervals: len(w.Intervals)}
	var weighted, weightedSeconds, stress float64

	for _, iv := range w.Intervals {
		d, err := m.IntervalDuration(iv)
		if err != nil {
			if _, free := iv.(workout.Free); free && errors.Is(err, ErrModeMismatch) {
				continue
			}
			return Stats{}, err
		}
		st.TotalDuration.Seconds += d.Seconds

		if m.SportType() == workout.SportTypeRun {
			dist, err := m.IntervalDistance(iv)
			if err != nil {
				return Stats{}, err
			}
			st.TotalDistance.Meters += dist.Meters
		}

		mean, meanSquare, ok := intensityMoments(iv, m)
		if !ok {
			continue
		}
		weighted += mean * d.Seconds
		weightedSeconds += d.Seconds
		stress += meanSquare * d.Seconds
	}

	if weightedSeconds > 0 {
		st.AverageIntensity = weighted / weightedSeconds
	}
	if m.SportType() == workout.SportTypeBike {
		st.StressScore = stress / 3600 * 100
	}
	return st, nil
}

// intensityMoments returns the time-averaged intensity and squared intensity of iv
func intensityMoments(iv workout.Interval, m Mode) (mean, meanSquare float64, ok bool) {
	switch v := iv.(type) {
	case workout.Steady:
		return v.Intensity, v.Intensity * v.Intensity, true
	case workout.Ramp:
		s, e := v.StartIntensity, v.EndIntensity
		return (s + e) / 2, (s*s + s*e + e*e) / 3, true
	case workout.Free:
		return 0, 0, false
	case workout.Repetition:
		onD, err := m.IntervalDuration(workout.Steady{Length: v.OnLength, Intensity: v.OnIntensity, Pace: v.Pace})
		if err != nil {
			return 0, 0, false
		}
		offD, err := m.IntervalDuration(workout.Steady{Length: v.OffLength, Intensity: v.OffIntensity, Pace: v.Pace})
		if err != nil {
			return 0, 0, false
		}
		cycle := onD.Seconds + offD.Seconds
		if cycle <= 0 {
			return 0, 0, false
		}
		mean = (v.OnIntensity*onD.Seconds + v.OffIntensity*offD.Seconds) / cycle
		meanSquare = (v.OnIntensity*v.OnIntensity*onD.Seconds + v.OffIntensity*v.OffIntensity*offD.Seconds) / cycle
		return mean, meanSquare, true
	}
	return 0, 0, false
}
