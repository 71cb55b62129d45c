package zwo

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

func decode(data string) (fileXML, error) {
	var file fileXML
	if err := xml.Unmarshal([]byte(data), &file); err != nil {
		return fileXML{}, &MalformedFileError{Reason: "invalid XML", Err: err}
	}
	if file.XMLName.Local != rootElement {
		return fileXML{}, &MalformedFileError{
			Reason: fmt.Sprintf("root element <%s>, want <%s>", file.XMLName.Local, rootElement),
		}
	}
	return file, nil
}

// types reads sportType and durationType, keeping the given fallbacks for missing values
func (file fileXML) types(sport workout.SportType, lengthType workout.LengthType) (workout.SportType, workout.LengthType, error) {
	if s := strings.TrimSpace(file.SportType); s != "" {
		parsed, err := workout.ParseSportType(s)
		if err != nil {
			return "", "", &MalformedFileError{Reason: "sportType", Err: err}
		}
		sport = parsed
	}
	if s := strings.TrimSpace(file.DurationType); s != "" {
		parsed, err := workout.ParseLengthType(s)
		if err != nil {
			return "", "", &MalformedFileError{Reason: "durationType", Err: err}
		}
		lengthType = parsed
	}
	return sport, lengthType, nil
}

// PeekTypes returns the sport and length type declared by a workout_file document, defaulting
// to a time-based bike workout, so callers can pick the mode before parsing
func PeekTypes(data string) (workout.SportType, workout.LengthType, error) {
	file, err := decode(data)
	if err != nil {
		return "", "", err
	}
	return file.types(workout.SportTypeBike, workout.LengthTypeTime)
}

// ParseWorkoutXML reads a workout_file document. Every interval and instruction gets a fresh
// id. A missing sportType or durationType falls back to the mode's. Files whose intervals or
// instructions break the workout invariants are rejected as malformed.
func ParseWorkoutXML(data string, m mode.Mode) (workout.Workout, error) {
	file, err := decode(data)
	if err != nil {
		return workout.Workout{}, err
	}
	sport, lengthType, err := file.types(m.SportType(), m.LengthType())
	if err != nil {
		return workout.Workout{}, err
	}

	w := workout.Workout{
		Author:       strings.TrimSpace(file.Author),
		Name:         strings.TrimSpace(file.Name),
		Description:  strings.TrimSpace(file.Description),
		SportType:    sport,
		LengthType:   lengthType,
		Tags:         []string{},
		Intervals:    []workout.Interval{},
		Instructions: []workout.Instruction{},
	}
	if err := mode.CheckWorkout(m, w); err != nil {
		return workout.Workout{}, err
	}
	for _, tag := range file.Tags.Tags {
		if name := strings.TrimSpace(tag.Name); name != "" {
			w.Tags = append(w.Tags, name)
		}
	}

	distance := w.LengthType == workout.LengthTypeDistance
	var running float64
	for _, seg := range file.Workout.Segments {
		iv, err := intervalFor(seg, distance)
		if err != nil {
			return workout.Workout{}, err
		}
		length, err := workout.IntervalLength(iv)
		if err != nil {
			return workout.Workout{}, &MalformedFileError{Reason: "<" + seg.XMLName.Local + ">", Err: err}
		}
		for _, te := range seg.TextEvents {
			offset, err := textEventOffset(te, distance)
			if err != nil {
				return workout.Workout{}, err
			}
			w.Instructions = append(w.Instructions, workout.Instruction{
				ID:     workout.NewID(),
				Text:   te.Message,
				Offset: workout.NewLength(w.LengthType, running+offset),
			})
		}
		w.Intervals = append(w.Intervals, iv)
		running += length.Value()
	}
	if err := w.Validate(); err != nil {
		return workout.Workout{}, &MalformedFileError{Reason: "invalid workout", Err: err}
	}
	return w, nil
}

// attrs parses attribute values of one element, keeping the first failure
type attrs struct {
	elem string
	err  error
}

func (a *attrs) fail(name, value string, err error) {
	if a.err == nil {
		a.err = &MalformedFileError{Reason: fmt.Sprintf("<%s %s=%q>", a.elem, name, value), Err: err}
	}
}

func (a *attrs) float(name, value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		a.fail(name, value, err)
	}
	return f
}

func (a *attrs) integer(name, value string) int {
	return int(math.Round(a.float(name, value)))
}

func (a *attrs) pace(value string) workout.Pace {
	p := workout.Pace(a.integer("pace", value))
	if !p.Valid() {
		a.fail("pace", value, fmt.Errorf("pace index out of range"))
		return workout.PaceOneMile
	}
	return p
}

// length reads the primary attribute for the workout's length type and falls back to the
// other spelling, so files using Duration for distances still load.
func (a *attrs) length(distance bool, durationName, durationValue, lengthName, lengthValue string) workout.Length {
	if distance {
		if lengthValue == "" {
			return workout.Distance{Meters: a.float(durationName, durationValue)}
		}
		return workout.Distance{Meters: a.float(lengthName, lengthValue)}
	}
	if durationValue == "" {
		return workout.Duration{Seconds: a.float(lengthName, lengthValue)}
	}
	return workout.Duration{Seconds: a.float(durationName, durationValue)}
}

func intervalFor(seg segmentXML, distance bool) (workout.Interval, error) {
	a := &attrs{elem: seg.XMLName.Local}
	var iv workout.Interval

	switch seg.XMLName.Local {
	case elemSteadyState:
		iv = workout.Steady{
			ID:        workout.NewID(),
			Length:    a.length(distance, "Duration", seg.Duration, "Length", seg.Length),
			Intensity: a.float("Power", seg.Power),
			Cadence:   a.integer("Cadence", seg.Cadence),
			Pace:      a.pace(seg.Pace),
		}
	case elemWarmup, elemRamp, elemCooldown:
		iv = workout.Ramp{
			ID:             workout.NewID(),
			Length:         a.length(distance, "Duration", seg.Duration, "Length", seg.Length),
			StartIntensity: a.float("PowerLow", seg.PowerLow),
			EndIntensity:   a.float("PowerHigh", seg.PowerHigh),
			Cadence:        a.integer("Cadence", seg.Cadence),
			Pace:           a.pace(seg.Pace),
		}
	case elemIntervalsT:
		iv = workout.Repetition{
			ID:           workout.NewID(),
			Repeat:       a.integer("Repeat", seg.Repeat),
			OnLength:     a.length(distance, "OnDuration", seg.OnDuration, "OnLength", seg.OnLength),
			OffLength:    a.length(distance, "OffDuration", seg.OffDuration, "OffLength", seg.OffLength),
			OnIntensity:  a.float("OnPower", seg.OnPower),
			OffIntensity: a.float("OffPower", seg.OffPower),
			OnCadence:    a.integer("Cadence", seg.Cadence),
			OffCadence:   a.integer("CadenceResting", seg.CadenceResting),
			Pace:         a.pace(seg.Pace),
		}
	case elemFreeRide:
		iv = workout.Free{
			ID:      workout.NewID(),
			Length:  a.length(distance, "Duration", seg.Duration, "Length", seg.Length),
			Cadence: a.integer("Cadence", seg.Cadence),
		}
	default:
		return nil, &MalformedFileError{Reason: fmt.Sprintf("unknown segment <%s>", seg.XMLName.Local)}
	}

	if a.err != nil {
		return nil, a.err
	}
	return iv, nil
}

func textEventOffset(te textEventXML, distance bool) (float64, error) {
	a := &attrs{elem: "textevent"}
	var offset float64
	switch {
	case distance && te.DistOffset != "":
		offset = a.float("distoffset", te.DistOffset)
	case !distance && te.TimeOffset != "":
		offset = a.float("timeoffset", te.TimeOffset)
	default:
		offset = a.float("timeoffset", te.TimeOffset) + a.float("distoffset", te.DistOffset)
	}
	return offset, a.err
}
