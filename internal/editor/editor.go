// Package editor holds the workout being edited and applies id-addressed mutations to it.
// Every effective change bumps the revision and is published to listeners; no-op mutations
// publish nothing.
package editor

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/lowaak/smart-trainer/workout-editor/internal/events"
	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// ErrUnknownIntervalType is returned by AddInterval for a type the factory cannot build
var ErrUnknownIntervalType = errors.New("unknown interval type")

// Change describes one effective edit
type Change struct {
	Revision uint64
	Op       string
	Workout  workout.Workout
}

// Editor owns one workout. All methods are safe for concurrent use.
type Editor struct {
	logger *log.Logger

	mu       sync.RWMutex
	bike     mode.BikeMode
	run      mode.RunMode
	workout  workout.Workout
	revision uint64

	changes *events.CallbackEvent[Change]
}

// New creates an editor holding an empty workout of the given sport and length type
func New(bike mode.BikeMode, run mode.RunMode, sportType workout.SportType, lengthType workout.LengthType, logger *log.Logger) *Editor {
	if logger == nil {
		panic("Editor: logger cannot be nil")
	}
	return &Editor{
		logger:  logger,
		bike:    bike,
		run:     run,
		workout: workout.CreateEmptyWorkout(sportType, lengthType),
		changes: events.NewCallbackEvent[Change](true),
	}
}

// Listen registers fn for every change and returns its unregister func. A listener
// registered after the first change immediately receives the latest one.
func (e *Editor) Listen(fn func(Change)) func() {
	return e.changes.Listen(fn)
}

// Workout returns a copy of the current workout
func (e *Editor) Workout() workout.Workout {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.workout.Copy()
}

// Revision counts effective changes since creation
func (e *Editor) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Mode returns the conversion mode for the current workout
func (e *Editor) Mode() mode.Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modeLocked()
}

func (e *Editor) modeLocked() mode.Mode {
	return mode.ForWorkout(e.workout, e.bike, e.run)
}

// SetAthlete replaces the rider and runner references used for conversions
func (e *Editor) SetAthlete(bike mode.BikeMode, times mode.RunningTimes) {
	e.mu.Lock()
	e.bike = bike
	e.run.RunningTimes = times
	e.mu.Unlock()
	e.logger.Printf("Editor: athlete set to FTP %.0f W, weight %.1f kg", bike.FTP, bike.Weight)
}

// commit stores next when it differs from the current workout. MUST be called with mu held;
// the returned change is published by the caller after unlocking.
func (e *Editor) commit(op string, next workout.Workout) (Change, bool) {
	if sameWorkout(e.workout, next) {
		return Change{}, false
	}
	if len(next.Intervals) == 0 && len(next.Instructions) > 0 {
		next.Instructions = []workout.Instruction{}
	} else if total, err := next.TotalLength(); err == nil {
		next.Instructions = workout.ClampInstructions(next.Instructions, total)
	}
	e.workout = next
	e.revision++
	return Change{Revision: e.revision, Op: op, Workout: next.Copy()}, true
}

// apply runs fn on the current workout under the lock and publishes the result
func (e *Editor) apply(op string, fn func(w workout.Workout, m mode.Mode) workout.Workout) bool {
	e.mu.Lock()
	change, changed := e.commit(op, fn(e.workout, e.modeLocked()))
	e.mu.Unlock()

	if !changed {
		return false
	}
	e.logger.Printf("Editor: %s (revision %d)", op, change.Revision)
	e.changes.Notify(change)
	return true
}

// sameWorkout reports whether b is the unchanged a. Mutation helpers return their input
// slices untouched on no-ops, so slice identity is enough for intervals and instructions.
func sameWorkout(a, b workout.Workout) bool {
	return a.Author == b.Author && a.Name == b.Name && a.Description == b.Description &&
		a.SportType == b.SportType && a.LengthType == b.LengthType &&
		slices.Equal(a.Tags, b.Tags) && sameSlice(a.Intervals, b.Intervals) && sameSlice(a.Instructions, b.Instructions)
}

func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// Reset replaces the workout with an empty one
func (e *Editor) Reset(sportType workout.SportType, lengthType workout.LengthType) {
	e.apply("reset", func(workout.Workout, mode.Mode) workout.Workout {
		return workout.CreateEmptyWorkout(sportType, lengthType)
	})
}

// Metadata is the descriptive part of a workout
type Metadata struct {
	Author      string   `json:"author"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// SetMetadata replaces author, name, description and tags
func (e *Editor) SetMetadata(md Metadata) bool {
	return e.apply("set metadata", func(w workout.Workout, _ mode.Mode) workout.Workout {
		w.Author, w.Name, w.Description = md.Author, md.Name, md.Description
		if md.Tags != nil {
			w.Tags = append([]string{}, md.Tags...)
		}
		return w
	})
}

// AddInterval appends a default interval of type t and returns it
func (e *Editor) AddInterval(t workout.IntervalType) (workout.Interval, error) {
	var added workout.Interval
	e.apply("add "+string(t), func(w workout.Workout, _ mode.Mode) workout.Workout {
		iv, ok := workout.NewFactory(w.LengthType).Default(t)
		if !ok {
			return w
		}
		added = iv
		w.Intervals = workout.AppendIntervals(w.Intervals, iv)
		return w
	})
	if added == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntervalType, t)
	}
	return added, nil
}

// ReplaceInterval swaps in iv for the interval with the same id after validating it
func (e *Editor) ReplaceInterval(iv workout.Interval) (bool, error) {
	var verr error
	changed := e.apply("replace interval", func(w workout.Workout, _ mode.Mode) workout.Workout {
		if verr = workout.ValidateInterval(iv, w.LengthType); verr != nil {
			return w
		}
		w.Intervals = workout.ReplaceInterval(iv, w.Intervals)
		return w
	})
	return changed, verr
}

// UpdateDuration adds deltaSeconds to steady interval id
func (e *Editor) UpdateDuration(id string, deltaSeconds float64) bool {
	return e.apply("update duration", func(w workout.Workout, m mode.Mode) workout.Workout {
		w.Intervals = workout.UpdateIntervalDuration(id, deltaSeconds, w.Intervals, m)
		return w
	})
}

// UpdateIntensity adds delta to steady interval id
func (e *Editor) UpdateIntensity(id string, delta float64) bool {
	return e.apply("update intensity", func(w workout.Workout, _ mode.Mode) workout.Workout {
		w.Intervals = workout.UpdateIntervalIntensity(id, delta, w.Intervals)
		return w
	})
}

// Move shifts interval id one place in direction
func (e *Editor) Move(id string, direction int) bool {
	return e.apply("move interval", func(w workout.Workout, _ mode.Mode) workout.Workout {
		w.Intervals = workout.MoveInterval(id, direction, w.Intervals)
		return w
	})
}

// Duplicate inserts a copy of interval id after it
func (e *Editor) Duplicate(id string) bool {
	return e.apply("duplicate interval", func(w workout.Workout, _ mode.Mode) workout.Workout {
		w.Intervals = workout.DuplicateInterval(id, w.Intervals)
		return w
	})
}

// Remove drops interval id. Instructions past the new end are pulled back to it.
func (e *Editor) Remove(id string) bool {
	return e.apply("remove interval", func(w workout.Workout, _ mode.Mode) workout.Workout {
		w.Intervals = workout.RemoveInterval(id, w.Intervals)
		return w
	})
}

// Load replaces the workout with w after validating it
func (e *Editor) Load(w workout.Workout) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	next := w.Copy()
	e.apply("load "+next.Name, func(workout.Workout, mode.Mode) workout.Workout { return next })
	return nil
}
