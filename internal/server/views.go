package server

import (
	"fmt"

	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

type lengthView struct {
	Type  workout.LengthType `json:"type" yaml:"type"`
	Value float64            `json:"value" yaml:"value"`
}

func newLengthView(l workout.Length) *lengthView {
	if l == nil {
		return nil
	}
	return &lengthView{Type: l.Type(), Value: l.Value()}
}

type intervalView struct {
	ID             string               `json:"id" yaml:"id"`
	Type           workout.IntervalType `json:"type" yaml:"type"`
	Length         *lengthView          `json:"length,omitempty" yaml:"length,omitempty"`
	Intensity      float64              `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	StartIntensity float64              `json:"startIntensity,omitempty" yaml:"start_intensity,omitempty"`
	EndIntensity   float64              `json:"endIntensity,omitempty" yaml:"end_intensity,omitempty"`
	Repeat         int                  `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	OnLength       *lengthView          `json:"onLength,omitempty" yaml:"on_length,omitempty"`
	OffLength      *lengthView          `json:"offLength,omitempty" yaml:"off_length,omitempty"`
	OnIntensity    float64              `json:"onIntensity,omitempty" yaml:"on_intensity,omitempty"`
	OffIntensity   float64              `json:"offIntensity,omitempty" yaml:"off_intensity,omitempty"`
	Cadence        int                  `json:"cadence,omitempty" yaml:"cadence,omitempty"`
	OffCadence     int                  `json:"offCadence,omitempty" yaml:"off_cadence,omitempty"`
	Pace           string               `json:"pace,omitempty" yaml:"pace,omitempty"`
}

func newIntervalView(iv workout.Interval, run bool) intervalView {
	v := intervalView{ID: iv.IntervalID(), Type: iv.Type()}
	pace := func(p workout.Pace) string {
		if run {
			return p.String()
		}
		return ""
	}
	switch t := iv.(type) {
	case workout.Steady:
		v.Length, v.Intensity, v.Cadence, v.Pace = newLengthView(t.Length), t.Intensity, t.Cadence, pace(t.Pace)
	case workout.Ramp:
		v.Length, v.Cadence, v.Pace = newLengthView(t.Length), t.Cadence, pace(t.Pace)
		v.StartIntensity, v.EndIntensity = t.StartIntensity, t.EndIntensity
	case workout.Free:
		v.Length, v.Cadence = newLengthView(t.Length), t.Cadence
	case workout.Repetition:
		v.Repeat, v.Pace = t.Repeat, pace(t.Pace)
		v.OnLength, v.OffLength = newLengthView(t.OnLength), newLengthView(t.OffLength)
		v.OnIntensity, v.OffIntensity = t.OnIntensity, t.OffIntensity
		v.Cadence, v.OffCadence = t.OnCadence, t.OffCadence
	default:
		panic(fmt.Sprintf("unhandled interval type %T", iv))
	}
	return v
}

type instructionView struct {
	ID     string      `json:"id" yaml:"id"`
	Text   string      `json:"text" yaml:"text"`
	Offset *lengthView `json:"offset" yaml:"offset"`
}

type workoutView struct {
	Revision     uint64             `json:"revision" yaml:"revision"`
	Author       string             `json:"author" yaml:"author"`
	Name         string             `json:"name" yaml:"name"`
	Description  string             `json:"description" yaml:"description"`
	SportType    workout.SportType  `json:"sportType" yaml:"sport_type"`
	LengthType   workout.LengthType `json:"lengthType" yaml:"length_type"`
	Tags         []string           `json:"tags" yaml:"tags"`
	Total        *lengthView        `json:"total,omitempty" yaml:"total,omitempty"`
	Intervals    []intervalView     `json:"intervals" yaml:"intervals"`
	Instructions []instructionView  `json:"instructions" yaml:"instructions"`
}

func newWorkoutView(w workout.Workout, revision uint64) workoutView {
	run := w.SportType == workout.SportTypeRun
	v := workoutView{
		Revision:     revision,
		Author:       w.Author,
		Name:         w.Name,
		Description:  w.Description,
		SportType:    w.SportType,
		LengthType:   w.LengthType,
		Tags:         append([]string{}, w.Tags...),
		Intervals:    make([]intervalView, 0, len(w.Intervals)),
		Instructions: make([]instructionView, 0, len(w.Instructions)),
	}
	if total, err := w.TotalLength(); err == nil {
		v.Total = newLengthView(total)
	}
	for _, iv := range w.Intervals {
		v.Intervals = append(v.Intervals, newIntervalView(iv, run))
	}
	for _, in := range w.Instructions {
		v.Instructions = append(v.Instructions, instructionView{ID: in.ID, Text: in.Text, Offset: newLengthView(in.Offset)})
	}
	return v
}
