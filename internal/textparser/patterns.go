package textparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// Every token pattern is delimited by whitespace or the line ends, so "i5%" is never read as
// a percentage and "3.0wkg" never as watts.
const (
	num     = `(\d+(?:\.\d+)?)`
	clock   = `(\d+(?::\d{1,2}){0,2})`
	paceRef = `(1M|5K|10K|HM|M)?`
	lead    = `(?:^|\s)`
	trail   = `(?:\s|$)`
)

var (
	wattsRe   = regexp.MustCompile(lead + num + `w` + trail)
	wkgRe     = regexp.MustCompile(lead + num + `wkg` + trail)
	percentRe = regexp.MustCompile(lead + num + `%` + paceRef + trail)

	wattsRangeRe   = regexp.MustCompile(lead + num + `w?-` + num + `w` + trail)
	wkgRangeRe     = regexp.MustCompile(lead + num + `(?:wkg)?-` + num + `wkg` + trail)
	percentRangeRe = regexp.MustCompile(lead + num + `%?-` + num + `%` + paceRef + trail)

	durationRe      = regexp.MustCompile(lead + clock + `(s|m|h)` + trail)
	durationRangeRe = regexp.MustCompile(lead + clock + `(s|m|h)?-` + clock + `(s|m|h)` + trail)
	clockRe         = regexp.MustCompile(lead + `(\d+:\d{2}(?::\d{2})?)` + trail)

	distanceRe      = regexp.MustCompile(lead + num + `(km|m)` + trail)
	distanceRangeRe = regexp.MustCompile(lead + num + `(km|m)?-` + num + `(km|m)` + trail)

	cadenceRe      = regexp.MustCompile(lead + `(\d+)rpm` + trail)
	cadenceRangeRe = regexp.MustCompile(lead + `(\d+)(?:rpm)?-(\d+)rpm` + trail)
	inclineRe      = regexp.MustCompile(lead + `i(-?\d+(?:\.\d+)?)%` + trail)
	repeatRe       = regexp.MustCompile(lead + `(\d+)x` + trail)
	quotedRe       = regexp.MustCompile(`"([^"]*)"`)
)

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// clockSeconds reads "90", "1:30" or "1:02:03". With unit "m" or "h" the unit applies to the
// leading field, so "1:30m" is ninety seconds; without a unit (or with "s") the last field is
// seconds.
func clockSeconds(value, unit string) float64 {
	parts := strings.Split(value, ":")
	var total float64
	for _, p := range parts {
		total = total*60 + parseFloat(p)
	}
	var scale float64
	switch unit {
	case "m":
		scale = 60
	case "h":
		scale = 3600
	default:
		return total
	}
	for i := 1; i < len(parts); i++ {
		scale /= 60
	}
	return total * scale
}

func metersOf(value, unit string) float64 {
	v := parseFloat(value)
	if unit == "km" {
		return v * 1000
	}
	return v
}

// percentage returns the intensity and pace of the first "80%" or "80%5K" token
func percentage(line string) (float64, workout.Pace, bool) {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return 0, workout.PaceOneMile, false
	}
	pace, _ := workout.ParsePace(m[2])
	return parseFloat(m[1]) / 100, pace, true
}

func percentageRange(line string) (float64, float64, workout.Pace, bool) {
	m := percentRangeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, workout.PaceOneMile, false
	}
	pace, _ := workout.ParsePace(m[3])
	return parseFloat(m[1]) / 100, parseFloat(m[2]) / 100, pace, true
}

func duration(line string) (float64, bool) {
	m := durationRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return clockSeconds(m[1], m[2]), true
}

func durationRange(line string) (float64, float64, bool) {
	m := durationRangeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	startUnit := m[2]
	if startUnit == "" {
		startUnit = m[4]
	}
	return clockSeconds(m[1], startUnit), clockSeconds(m[3], m[4]), true
}

func distance(line string) (float64, bool) {
	m := distanceRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return metersOf(m[1], m[2]), true
}

func distanceRange(line string) (float64, float64, bool) {
	m := distanceRangeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	startUnit := m[2]
	if startUnit == "" {
		startUnit = m[4]
	}
	return metersOf(m[1], startUnit), metersOf(m[3], m[4]), true
}

func cadence(line string) (int, bool) {
	m := cadenceRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, _ := strconv.Atoi(m[1])
	return v, true
}

func cadenceRange(line string) (int, int, bool) {
	m := cadenceRangeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	on, _ := strconv.Atoi(m[1])
	off, _ := strconv.Atoi(m[2])
	return on, off, true
}

func incline(line string) (float64, bool) {
	m := inclineRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return parseFloat(m[1]), true
}

func repeat(line string) (int, bool) {
	m := repeatRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// messageText splits a message line into its text and the remainder holding the offset.
// Unquoted messages use everything after the keyword except the offset token.
func messageText(line string) (string, string) {
	if m := quotedRe.FindStringSubmatchIndex(line); m != nil {
		return line[m[2]:m[3]], line[:m[0]] + " " + line[m[1]:]
	}
	rest := line
	if i := strings.Index(strings.ToLower(rest), "message"); i >= 0 {
		rest = rest[i+len("message"):]
	}
	text := rest
	for _, re := range []*regexp.Regexp{clockRe, durationRe, distanceRe} {
		if loc := re.FindStringIndex(text); loc != nil {
			text = text[:loc[0]] + " " + text[loc[1]:]
			break
		}
	}
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
	return text, rest
}

// messageSeconds reads a message offset written as "12:00", "1:02:03" or "90s"
func messageSeconds(rest string) float64 {
	if m := clockRe.FindStringSubmatch(rest); m != nil {
		return clockSeconds(m[1], "")
	}
	if d, ok := duration(rest); ok {
		return d
	}
	return 0
}
