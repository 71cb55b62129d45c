package textparser

import "github.com/lowaak/smart-trainer/workout-editor/internal/workout"

func blockLength(lengthType workout.LengthType, seconds, meters float64) workout.Length {
	v := seconds
	if lengthType == workout.LengthTypeDistance {
		v = meters
	}
	if v <= 0 {
		return nil
	}
	return workout.NewLength(lengthType, v)
}

// ToIntervals converts parsed blocks into intervals and instructions of lengthType.
// Message blocks become instructions at their absolute offset; the other blocks go through the
// factory, so anything a line left unset takes the factory default.
func ToIntervals(blocks []Block, lengthType workout.LengthType) ([]workout.Interval, []workout.Instruction) {
	f := workout.NewFactory(lengthType)
	intervals := []workout.Interval{}
	instructions := []workout.Instruction{}
	for _, b := range blocks {
		switch b.Type {
		case BlockSteady:
			intervals = append(intervals, f.Steady(workout.SteadyFields{
				Length:    blockLength(lengthType, b.Duration, b.Distance),
				Intensity: b.Power,
				Cadence:   b.Cadence,
				Pace:      b.Pace,
			}))
		case BlockRamp:
			intervals = append(intervals, f.Ramp(workout.RampFields{
				Length:         blockLength(lengthType, b.Duration, b.Distance),
				StartIntensity: b.Power,
				EndIntensity:   b.EndPower,
				Cadence:        b.Cadence,
				Pace:           b.Pace,
			}))
		case BlockInterval:
			intervals = append(intervals, f.Repetition(workout.RepetitionFields{
				Repeat:       b.Repeat,
				OnLength:     blockLength(lengthType, b.Duration, b.Distance),
				OffLength:    blockLength(lengthType, b.OffDuration, b.OffDistance),
				OnIntensity:  b.Power,
				OffIntensity: b.EndPower,
				OnCadence:    b.Cadence,
				OffCadence:   b.OffCadence,
				Pace:         b.Pace,
			}))
		case BlockFree:
			intervals = append(intervals, f.Free(workout.FreeFields{
				Length:  blockLength(lengthType, b.Duration, b.Distance),
				Cadence: b.Cadence,
			}))
		case BlockMessage:
			instructions = append(instructions, f.Instruction(b.Text, workout.NewLength(lengthType, b.Offset)))
		}
	}
	return intervals, instructions
}

// BlocksToWorkout builds a workout from parsed blocks. Instruction offsets past the end of the
// workout are clamped to its total length; messages are dropped when no interval was parsed.
func BlocksToWorkout(blocks []Block, sportType workout.SportType, lengthType workout.LengthType) (workout.Workout, error) {
	w := workout.CreateEmptyWorkout(sportType, lengthType)
	intervals, instructions := ToIntervals(blocks, w.LengthType)
	w.Intervals = intervals
	total, err := w.TotalLength()
	if err != nil {
		return workout.Workout{}, err
	}
	if len(w.Intervals) == 0 {
		return w, nil
	}
	for _, in := range instructions {
		w.Instructions = workout.AddInstruction(in, w.Instructions, total)
	}
	return w, nil
}
