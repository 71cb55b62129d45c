package zwo

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// CreateWorkoutXML renders w as a workout_file document. Instructions are embedded as
// textevent children of the segment whose window contains their offset.
func CreateWorkoutXML(w workout.Workout, m mode.Mode) (string, error) {
	if err := mode.CheckWorkout(m, w); err != nil {
		return "", err
	}
	if err := w.Validate(); err != nil {
		return "", fmt.Errorf("create workout xml: %w", err)
	}
	tl, err := workout.NewTimeline(w.Intervals, w.LengthType)
	if err != nil {
		return "", fmt.Errorf("create workout xml: %w", err)
	}

	distance := w.LengthType == workout.LengthTypeDistance
	placed := make([]bool, len(w.Instructions))
	segments := make([]segmentXML, 0, len(tl.Spans))

	for i, span := range tl.Spans {
		seg := segmentFor(span.Interval, i, len(tl.Spans), distance)
		last := i == len(tl.Spans)-1
		for j, in := range w.Instructions {
			if placed[j] {
				continue
			}
			offset := in.Offset.Value()
			if !span.Contains(offset) && !(last && offset == tl.Total) {
				continue
			}
			seg.TextEvents = append(seg.TextEvents, textEventFor(in.Text, offset-span.Start, distance))
			placed[j] = true
		}
		segments = append(segments, seg)
	}

	for j, ok := range placed {
		if !ok {
			in := w.Instructions[j]
			return "", fmt.Errorf("create workout xml: instruction %s at %v: %w", in.ID, in.Offset, workout.ErrInstructionOutOfRange)
		}
	}

	file := fileXML{
		XMLName:      xml.Name{Local: rootElement},
		Author:       w.Author,
		Name:         w.Name,
		Description:  w.Description,
		SportType:    string(w.SportType),
		DurationType: string(w.LengthType),
		Workout:      workoutXML{Segments: segments},
	}
	for _, tag := range w.Tags {
		file.Tags.Tags = append(file.Tags.Tags, tagXML{Name: tag})
	}

	out, err := xml.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("create workout xml: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

// segmentFor maps one interval to its element. Ramps in first position are written as Warmup
// and in last position as Cooldown. PowerLow always carries the start intensity and
// PowerHigh the end intensity, whichever is larger, as readers of the format expect.
func segmentFor(iv workout.Interval, index, count int, distance bool) segmentXML {
	var seg segmentXML
	setLength := func(l workout.Length) {
		if distance {
			seg.Length = formatNumber(l.Value())
		} else {
			seg.Duration = formatNumber(l.Value())
		}
	}

	switch v := iv.(type) {
	case workout.Steady:
		seg.XMLName.Local = elemSteadyState
		setLength(v.Length)
		seg.Power = formatNumber(v.Intensity)
		seg.Pace = strconv.Itoa(int(v.Pace))
		seg.Cadence = formatInt(v.Cadence)
	case workout.Ramp:
		switch {
		case index == 0:
			seg.XMLName.Local = elemWarmup
		case index == count-1:
			seg.XMLName.Local = elemCooldown
		default:
			seg.XMLName.Local = elemRamp
		}
		setLength(v.Length)
		seg.PowerLow = formatNumber(v.StartIntensity)
		seg.PowerHigh = formatNumber(v.EndIntensity)
		seg.Pace = strconv.Itoa(int(v.Pace))
		seg.Cadence = formatInt(v.Cadence)
	case workout.Repetition:
		seg.XMLName.Local = elemIntervalsT
		seg.Repeat = strconv.Itoa(v.Repeat)
		if distance {
			seg.OnLength = formatNumber(v.OnLength.Value())
			seg.OffLength = formatNumber(v.OffLength.Value())
		} else {
			seg.OnDuration = formatNumber(v.OnLength.Value())
			seg.OffDuration = formatNumber(v.OffLength.Value())
		}
		seg.OnPower = formatNumber(v.OnIntensity)
		seg.OffPower = formatNumber(v.OffIntensity)
		seg.Pace = strconv.Itoa(int(v.Pace))
		seg.Cadence = formatInt(v.OnCadence)
		seg.CadenceResting = formatInt(v.OffCadence)
	case workout.Free:
		seg.XMLName.Local = elemFreeRide
		setLength(v.Length)
		seg.Cadence = formatInt(v.Cadence)
	default:
		panic(fmt.Sprintf("zwo: unknown interval type %T", iv))
	}
	return seg
}

func textEventFor(text string, offset float64, distance bool) textEventXML {
	if distance {
		return textEventXML{DistOffset: formatNumber(offset), Message: text}
	}
	return textEventXML{TimeOffset: formatNumber(offset), Message: text}
}
