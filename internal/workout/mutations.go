package workout

import "slices"

// LengthConverter converts between an interval's stored length and its duration. The bike
// and run modes implement it.
type LengthConverter interface {
	IntervalDuration(iv Interval) (Duration, error)
	LengthFromDuration(d Duration, intensity float64, pace Pace) (Length, error)
}

// All functions below treat their input slices as immutable: they return a new slice when
// something changed and the input slice itself when nothing did.

func indexOf(id string, intervals []Interval) int {
	return slices.IndexFunc(intervals, func(iv Interval) bool { return iv.IntervalID() == id })
}

func replaced(intervals []Interval, idx int, iv Interval) []Interval {
	out := slices.Clone(intervals)
	out[idx] = iv
	return out
}

// UpdateIntervalDuration adds deltaSeconds to the duration of the steady interval id. The
// update is skipped entirely when the result would not be positive, when id is unknown, or
// when the interval is not a Steady.
func UpdateIntervalDuration(id string, deltaSeconds float64, intervals []Interval, conv LengthConverter) []Interval {
	idx := indexOf(id, intervals)
	if idx < 0 {
		return intervals
	}
	steady, ok := intervals[idx].(Steady)
	if !ok {
		return intervals
	}
	current, err := conv.IntervalDuration(steady)
	if err != nil {
		return intervals
	}
	next := current.Seconds + deltaSeconds
	if next <= 0 {
		return intervals
	}
	length, err := conv.LengthFromDuration(Duration{Seconds: next}, steady.Intensity, steady.Pace)
	if err != nil {
		return intervals
	}
	steady.Length = length
	return replaced(intervals, idx, steady)
}

// UpdateIntervalIntensity adds delta to the intensity of the steady interval id. Results at
// or below MinIntensity leave the slice unchanged.
func UpdateIntervalIntensity(id string, delta float64, intervals []Interval) []Interval {
	idx := indexOf(id, intervals)
	if idx < 0 {
		return intervals
	}
	steady, ok := intervals[idx].(Steady)
	if !ok {
		return intervals
	}
	next := steady.Intensity + delta
	if next <= MinIntensity {
		return intervals
	}
	steady.Intensity = next
	return replaced(intervals, idx, steady)
}

// MoveInterval swaps interval id with its neighbour in direction (negative moves towards the
// start). Moves past either end and unknown ids are no-ops.
func MoveInterval(id string, direction int, intervals []Interval) []Interval {
	idx := indexOf(id, intervals)
	if idx < 0 || direction == 0 {
		return intervals
	}
	target := idx + 1
	if direction < 0 {
		target = idx - 1
	}
	if target < 0 || target >= len(intervals) {
		return intervals
	}
	out := slices.Clone(intervals)
	out[idx], out[target] = out[target], out[idx]
	return out
}

// ReplaceInterval swaps in iv for the interval with the same id
func ReplaceInterval(iv Interval, intervals []Interval) []Interval {
	idx := indexOf(iv.IntervalID(), intervals)
	if idx < 0 {
		return intervals
	}
	return replaced(intervals, idx, iv)
}

// RemoveInterval drops interval id
func RemoveInterval(id string, intervals []Interval) []Interval {
	idx := indexOf(id, intervals)
	if idx < 0 {
		return intervals
	}
	return slices.Delete(slices.Clone(intervals), idx, idx+1)
}

// DuplicateInterval inserts a clone of interval id directly after it
func DuplicateInterval(id string, intervals []Interval) []Interval {
	idx := indexOf(id, intervals)
	if idx < 0 {
		return intervals
	}
	return slices.Insert(slices.Clone(intervals), idx+1, Clone(intervals[idx]))
}

// AppendIntervals returns intervals followed by more
func AppendIntervals(intervals []Interval, more ...Interval) []Interval {
	out := make([]Interval, 0, len(intervals)+len(more))
	out = append(out, intervals...)
	return append(out, more...)
}

// AddInstruction appends in, clamping its offset into [0, total]
func AddInstruction(in Instruction, instructions []Instruction, total Length) []Instruction {
	in.Offset = clampOffset(in.Offset, total)
	out := make([]Instruction, 0, len(instructions)+1)
	out = append(out, instructions...)
	return append(out, in)
}

// UpdateInstruction replaces the text and offset of instruction id. The offset is clamped
// into [0, total].
func UpdateInstruction(id, text string, offset Length, instructions []Instruction, total Length) []Instruction {
	idx := slices.IndexFunc(instructions, func(in Instruction) bool { return in.ID == id })
	if idx < 0 {
		return instructions
	}
	clamped := clampOffset(offset, total)
	if instructions[idx].Text == text && instructions[idx].Offset == clamped {
		return instructions
	}
	out := slices.Clone(instructions)
	out[idx].Text = text
	out[idx].Offset = clamped
	return out
}

// RemoveInstruction drops instruction id
func RemoveInstruction(id string, instructions []Instruction) []Instruction {
	idx := slices.IndexFunc(instructions, func(in Instruction) bool { return in.ID == id })
	if idx < 0 {
		return instructions
	}
	return slices.Delete(slices.Clone(instructions), idx, idx+1)
}

func clampOffset(offset, total Length) Length {
	if offset == nil {
		return total.withValue(0)
	}
	v := offset.Value()
	if v < 0 {
		v = 0
	}
	if v > total.Value() {
		v = total.Value()
	}
	return total.withValue(v)
}

// ClampInstructions pulls every offset into [0, total], returning the input slice when all
// offsets already fit
func ClampInstructions(instructions []Instruction, total Length) []Instruction {
	var out []Instruction
	for i, in := range instructions {
		clamped := clampOffset(in.Offset, total)
		if in.Offset != nil && clamped == in.Offset {
			continue
		}
		if out == nil {
			out = slices.Clone(instructions)
		}
		out[i].Offset = clamped
	}
	if out == nil {
		return instructions
	}
	return out
}
