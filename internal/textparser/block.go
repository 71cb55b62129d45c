// Package textparser turns free-form workout text, one block per line, into structured
// blocks:
//
//	warmup 10m 50%-75%
//	steady 3.0wkg 10m 90rpm
//	interval 5x 30s-90s 250w-150w
//	message "Stay smooth" 12:00
//	free ride 10m
//
// Parsing is lenient: a line with a recognised keyword always yields a block, with defaults
// for anything that could not be read.
package textparser

import "github.com/lowaak/smart-trainer/workout-editor/internal/workout"

// BlockType classifies a parsed line
type BlockType string

const (
	BlockSteady   BlockType = "steady"
	BlockRamp     BlockType = "ramp"
	BlockInterval BlockType = "interval"
	BlockFree     BlockType = "free"
	BlockMessage  BlockType = "message"
)

// Block is one parsed line. Durations are seconds, distances meters and powers intensities
// (fractions of FTP or of pace speed).
type Block struct {
	Type        BlockType    `json:"type" yaml:"type"`
	Duration    float64      `json:"duration,omitempty" yaml:"duration,omitempty"`
	OffDuration float64      `json:"offDuration,omitempty" yaml:"off_duration,omitempty"`
	Distance    float64      `json:"distance,omitempty" yaml:"distance,omitempty"`
	OffDistance float64      `json:"offDistance,omitempty" yaml:"off_distance,omitempty"`
	Power       float64      `json:"power,omitempty" yaml:"power,omitempty"`         // steady, ramp start, interval on
	EndPower    float64      `json:"endPower,omitempty" yaml:"end_power,omitempty"`  // ramp end, interval off
	Cadence     int          `json:"cadence,omitempty" yaml:"cadence,omitempty"`
	OffCadence  int          `json:"offCadence,omitempty" yaml:"off_cadence,omitempty"`
	Repeat      int          `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Pace        workout.Pace `json:"pace" yaml:"pace"`
	Incline     float64      `json:"incline,omitempty" yaml:"incline,omitempty"`
	Text        string       `json:"text,omitempty" yaml:"text,omitempty"`
	Offset      float64      `json:"offset,omitempty" yaml:"offset,omitempty"` // message position from workout start
}

// Defaults for values missing from a line
const (
	defaultSteadySeconds = 300
	defaultFreeSeconds   = 600
	defaultSteadyMeters  = 1000
	defaultFreeMeters    = 2000
	defaultPower         = 1.0
	defaultRampStart     = workout.DefaultRampStart
	defaultRampEnd       = workout.DefaultRampEnd
	defaultWarmupStart   = 0.25
	defaultWarmupEnd     = 0.75
	defaultRepeat        = workout.DefaultRepeat
	defaultOnSeconds     = workout.DefaultOnSeconds
	defaultOffSeconds    = workout.DefaultOffSeconds
	defaultOnMeters      = workout.DefaultOnMeters
	defaultOffMeters     = workout.DefaultOffMeters
	defaultOffPower      = workout.DefaultOffIntensity
)
