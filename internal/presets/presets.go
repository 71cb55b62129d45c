// Package presets ships a small library of ready-made workouts written in the text format.
package presets

import (
	"fmt"
	"strings"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/textparser"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// Preset is a named workout in text form
type Preset struct {
	Name       string
	SportType  workout.SportType
	LengthType workout.LengthType
	Tags       []string
	Text       string
}

const (
	heartRateZone2MaxHRRatio = 0.67
	heartRateZone3MaxHRRatio = 0.75
)

func heartRateText(minutes int, ratio float64) string {
	return fmt.Sprintf("message \"Hold heart rate near %.0f%% of max\" 0:00\nfree ride %dm 90rpm", ratio*100, minutes)
}

// All lists the built-in presets
var All = []Preset{
	{
		Name: "30 Min Endurance", SportType: workout.SportTypeBike, Tags: []string{"endurance"},
		Text: `steady 5m 50% 90rpm
steady 20m 65% 90rpm
steady 5m 50% 90rpm`,
	},
	{
		Name: "20 Min FTP Test", SportType: workout.SportTypeBike, Tags: []string{"test"},
		Text: `steady 5m 50% 90rpm
steady 3m 70% 90rpm
steady 2m 50% 90rpm
message "Aim for max sustainable" 10:00
steady 20m 105% 90rpm
steady 5m 40% 90rpm`,
	},
	{
		Name: "5x5 Threshold Intervals", SportType: workout.SportTypeBike, Tags: []string{"threshold"},
		Text: `steady 5m 50% 90rpm
interval 4x 5m-3m 100%-50% 90-90rpm
steady 5m 100% 90rpm
steady 5m 50% 90rpm`,
	},
	{
		Name: "Recovery Spin", SportType: workout.SportTypeBike, Tags: []string{"recovery"},
		Text: `warmup 10m 40%-45% 90rpm
steady 25m 45% 90rpm
cooldown 10m 45%-35% 90rpm`,
	},
	{
		Name: "VO2max 4x4", SportType: workout.SportTypeBike, Tags: []string{"vo2max"},
		Text: `steady 10m 50% 90rpm
interval 3x 4m-4m 120%-50% 90-90rpm
steady 4m 120% 90rpm
steady 10m 50% 90rpm`,
	},
	{
		Name: "Intervals - 30m", SportType: workout.SportTypeBike, Tags: []string{"tempo"},
		Text: `steady 3m 65% 90rpm
steady 5m 90% 90rpm
steady 3m 65% 90rpm
interval 3x 4m-3m 90%-65% 90-90rpm`,
	},
	{
		Name: "Intervals - 60m", SportType: workout.SportTypeBike, Tags: []string{"tempo"},
		Text: `steady 3m 65% 90rpm
steady 5m 90% 90rpm
steady 3m 65% 90rpm
interval 7x 4m-3m 90%-65% 90-90rpm`,
	},
	{
		Name: "HR Zone 2 - 30 Min", SportType: workout.SportTypeBike, Tags: []string{"endurance", "heart rate"},
		Text: heartRateText(30, heartRateZone2MaxHRRatio),
	},
	{
		Name: "HR Zone 2 - 60 Min", SportType: workout.SportTypeBike, Tags: []string{"endurance", "heart rate"},
		Text: heartRateText(60, heartRateZone2MaxHRRatio),
	},
	{
		Name: "HR Zone 3 - 60 Min", SportType: workout.SportTypeBike, Tags: []string{"tempo", "heart rate"},
		Text: heartRateText(60, heartRateZone3MaxHRRatio),
	},
	{
		Name: "Easy Run 40", SportType: workout.SportTypeRun, LengthType: workout.LengthTypeTime, Tags: []string{"endurance"},
		Text: `warmup 5m 60%-70%M
steady 30m 75%M
cooldown 5m 70%-60%M`,
	},
	{
		Name: "Track 6x800", SportType: workout.SportTypeRun, LengthType: workout.LengthTypeDistance, Tags: []string{"vo2max"},
		Text: `steady 2km 70%M
message "Six hard laps coming" 1.5km
interval 6x 800m-400m 100%-60%5K
free run 1km`,
	},
}

// ByName finds a preset, ignoring case
func ByName(name string) (Preset, bool) {
	for _, p := range All {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Blocks parses the preset text with the matching parser
func (p Preset) Blocks(bike mode.BikeMode) []textparser.Block {
	if p.SportType == workout.SportTypeRun {
		return textparser.ParseRunText(p.Text, p.LengthType)
	}
	return textparser.ParseBikeText(p.Text, bike.FTP, bike.Weight)
}

// Build turns the preset into a workout. Bike presets are written in percent of FTP, so the
// rider's FTP only matters for watt or w/kg lines.
func (p Preset) Build(bike mode.BikeMode) (workout.Workout, error) {
	w, err := textparser.BlocksToWorkout(p.Blocks(bike), p.SportType, p.LengthType)
	if err != nil {
		return workout.Workout{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	w.Name = p.Name
	w.Tags = append([]string{}, p.Tags...)
	return w, nil
}
