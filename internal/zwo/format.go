// Package zwo reads and writes the workout_file XML format used by indoor training platforms
// (".zwo" files).
package zwo

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
)

const rootElement = "workout_file"

// Segment element names
const (
	elemSteadyState = "SteadyState"
	elemWarmup      = "Warmup"
	elemRamp        = "Ramp"
	elemCooldown    = "Cooldown"
	elemIntervalsT  = "IntervalsT"
	elemFreeRide    = "FreeRide"
)

// ErrMalformedFile matches every *MalformedFileError
var ErrMalformedFile = errors.New("malformed workout file")

// MalformedFileError reports XML that is not a readable workout_file document
type MalformedFileError struct {
	Reason string
	Err    error
}

func (e *MalformedFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed workout file: %s: %v", e.Reason, e.Err)
	}
	return "malformed workout file: " + e.Reason
}

func (e *MalformedFileError) Unwrap() error { return e.Err }

func (e *MalformedFileError) Is(target error) bool {
	return target == ErrMalformedFile
}

type fileXML struct {
	XMLName      xml.Name
	Author       string     `xml:"author"`
	Name         string     `xml:"name"`
	Description  string     `xml:"description"`
	SportType    string     `xml:"sportType"`
	DurationType string     `xml:"durationType"`
	Tags         tagsXML    `xml:"tags"`
	Workout      workoutXML `xml:"workout"`
}

type tagsXML struct {
	Tags []tagXML `xml:"tag"`
}

type tagXML struct {
	Name string `xml:"name,attr"`
}

type workoutXML struct {
	Segments []segmentXML `xml:",any"`
}

// segmentXML covers every segment element. Numbers are kept as strings so the writer controls
// formatting and empty attributes are left out.
type segmentXML struct {
	XMLName        xml.Name
	Duration       string         `xml:"Duration,attr,omitempty"`
	Length         string         `xml:"Length,attr,omitempty"`
	Repeat         string         `xml:"Repeat,attr,omitempty"`
	OnDuration     string         `xml:"OnDuration,attr,omitempty"`
	OffDuration    string         `xml:"OffDuration,attr,omitempty"`
	OnLength       string         `xml:"OnLength,attr,omitempty"`
	OffLength      string         `xml:"OffLength,attr,omitempty"`
	Power          string         `xml:"Power,attr,omitempty"`
	PowerLow       string         `xml:"PowerLow,attr,omitempty"`
	PowerHigh      string         `xml:"PowerHigh,attr,omitempty"`
	OnPower        string         `xml:"OnPower,attr,omitempty"`
	OffPower       string         `xml:"OffPower,attr,omitempty"`
	Pace           string         `xml:"pace,attr,omitempty"`
	Cadence        string         `xml:"Cadence,attr,omitempty"`
	CadenceResting string         `xml:"CadenceResting,attr,omitempty"`
	TextEvents     []textEventXML `xml:"textevent"`
}

type textEventXML struct {
	TimeOffset string `xml:"timeoffset,attr,omitempty"`
	DistOffset string `xml:"distoffset,attr,omitempty"`
	Message    string `xml:"message,attr"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
