package editor

import (
	"fmt"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/textparser"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
	"github.com/lowaak/smart-trainer/workout-editor/internal/zwo"
)

// ParseText parses text with the parser for the current sport without changing the workout
func (e *Editor) ParseText(text string) []textparser.Block {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parseLocked(text)
}

func (e *Editor) parseLocked(text string) []textparser.Block {
	if e.workout.SportType == workout.SportTypeRun {
		return textparser.ParseRunText(text, e.workout.LengthType)
	}
	return textparser.ParseBikeText(text, e.bike.FTP, e.bike.Weight)
}

// ImportText appends the blocks parsed from text. Message offsets are measured from the start
// of the imported section. Returns the number of intervals added.
func (e *Editor) ImportText(text string) (int, error) {
	var added int
	var importErr error
	e.apply("import text", func(w workout.Workout, _ mode.Mode) workout.Workout {
		intervals, instructions := textparser.ToIntervals(e.parseLocked(text), w.LengthType)
		start, err := w.TotalLength()
		if err != nil {
			importErr = err
			return w
		}
		if len(intervals) == 0 && len(instructions) == 0 {
			return w
		}
		w.Intervals = workout.AppendIntervals(w.Intervals, intervals...)
		total, err := w.TotalLength()
		if err != nil {
			importErr = err
			return w
		}
		for _, in := range instructions {
			if in.Offset, err = workout.AddLength(start, in.Offset); err != nil {
				importErr = err
				return w
			}
			w.Instructions = workout.AddInstruction(in, w.Instructions, total)
		}
		added = len(intervals)
		return w
	})
	if importErr != nil {
		return 0, fmt.Errorf("import text: %w", importErr)
	}
	return added, nil
}

// LoadXML replaces the workout with the one decoded from data. The file's sport type picks
// the mode, so a run file loads into a bike editor and vice versa.
func (e *Editor) LoadXML(data string) error {
	var loadErr error
	e.apply("load xml", func(w workout.Workout, _ mode.Mode) workout.Workout {
		sport, lengthType, err := zwo.PeekTypes(data)
		if err != nil {
			loadErr = err
			return w
		}
		probe := workout.CreateEmptyWorkout(sport, lengthType)
		loaded, err := zwo.ParseWorkoutXML(data, mode.ForWorkout(probe, e.bike, e.run))
		if err != nil {
			loadErr = err
			return w
		}
		return loaded
	})
	if loadErr != nil {
		e.logger.Printf("Editor: load xml failed: %v", loadErr)
		return fmt.Errorf("load xml: %w", loadErr)
	}
	return nil
}

// ExportXML encodes the current workout
func (e *Editor) ExportXML() (string, error) {
	e.mu.RLock()
	w, m := e.workout.Copy(), e.modeLocked()
	e.mu.RUnlock()

	out, err := zwo.CreateWorkoutXML(w, m)
	if err != nil {
		return "", fmt.Errorf("export xml: %w", err)
	}
	return out, nil
}

// Stats summarises the current workout
func (e *Editor) Stats() (mode.Stats, error) {
	e.mu.RLock()
	w, m := e.workout.Copy(), e.modeLocked()
	e.mu.RUnlock()
	return mode.ComputeStats(w, m)
}

// checkOffset rejects offsets outside the workout. A workout without intervals accepts none.
func checkOffset(w workout.Workout, offset float64) (workout.Length, workout.Length, error) {
	total, err := w.TotalLength()
	if err != nil {
		return nil, nil, err
	}
	l := workout.NewLength(w.LengthType, offset)
	if len(w.Intervals) == 0 {
		return nil, nil, fmt.Errorf("workout has no intervals: %w", workout.ErrInstructionOutOfRange)
	}
	if err := workout.CheckOffset(l, total); err != nil {
		return nil, nil, err
	}
	return l, total, nil
}

// AddInstruction places text at offset, which must lie inside the workout
func (e *Editor) AddInstruction(text string, offset float64) (workout.Instruction, error) {
	var added workout.Instruction
	var addErr error
	e.apply("add instruction", func(w workout.Workout, _ mode.Mode) workout.Workout {
		l, total, err := checkOffset(w, offset)
		if err != nil {
			addErr = err
			return w
		}
		added = workout.NewFactory(w.LengthType).Instruction(text, l)
		w.Instructions = workout.AddInstruction(added, w.Instructions, total)
		return w
	})
	if addErr != nil {
		return workout.Instruction{}, fmt.Errorf("add instruction: %w", addErr)
	}
	return added, nil
}

// UpdateInstruction rewrites instruction id. The offset must lie inside the workout.
func (e *Editor) UpdateInstruction(id, text string, offset float64) (bool, error) {
	var updateErr error
	changed := e.apply("update instruction", func(w workout.Workout, _ mode.Mode) workout.Workout {
		l, total, err := checkOffset(w, offset)
		if err != nil {
			updateErr = err
			return w
		}
		w.Instructions = workout.UpdateInstruction(id, text, l, w.Instructions, total)
		return w
	})
	if updateErr != nil {
		return false, fmt.Errorf("update instruction: %w", updateErr)
	}
	return changed, nil
}

// RemoveInstruction drops instruction id
func (e *Editor) RemoveInstruction(id string) bool {
	return e.apply("remove instruction", func(w workout.Workout, _ mode.Mode) workout.Workout {
		w.Instructions = workout.RemoveInstruction(id, w.Instructions)
		return w
	})
}
