package textparser

import (
	"bufio"
	"strings"

	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
)

type keyword int

const (
	keywordNone keyword = iota
	keywordMessage
	keywordSteady
	keywordRamp
	keywordWarmup
	keywordCooldown
	keywordInterval
	keywordFree
)

// classify looks for the block keyword. message is checked first so quoted text such as
// "steady now" cannot turn a message into a steady block.
func classify(line string) keyword {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "message"):
		return keywordMessage
	case strings.Contains(lower, "steady"):
		return keywordSteady
	case strings.Contains(lower, "warmup"):
		return keywordWarmup
	case strings.Contains(lower, "cooldown"):
		return keywordCooldown
	case strings.Contains(lower, "ramp"):
		return keywordRamp
	case strings.Contains(lower, "interval"):
		return keywordInterval
	case strings.Contains(lower, "free ride"), strings.Contains(lower, "free run"):
		return keywordFree
	}
	return keywordNone
}

func lines(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func rampDefaults(k keyword) (float64, float64) {
	switch k {
	case keywordWarmup:
		return defaultWarmupStart, defaultWarmupEnd
	case keywordCooldown:
		return defaultWarmupEnd, defaultWarmupStart
	}
	return defaultRampStart, defaultRampEnd
}

// BikeParser reads cycling text. Powers may be watts, w/kg or percent of FTP.
type BikeParser struct {
	Mode mode.BikeMode
}

// ParseBikeText parses cycling workout text for a rider with the given FTP and weight
func ParseBikeText(text string, ftp, weight float64) []Block {
	return BikeParser{Mode: mode.NewBikeMode(ftp, weight)}.Parse(text)
}

// Parse returns one block per recognised line; blank and unrecognised lines are skipped
func (p BikeParser) Parse(text string) []Block {
	var blocks []Block
	for _, line := range lines(text) {
		if b, ok := p.parseLine(line); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (p BikeParser) power(line string) (float64, bool) {
	if m := wattsRe.FindStringSubmatch(line); m != nil {
		return p.Mode.IntensityFromPower(parseFloat(m[1])), true
	}
	if m := wkgRe.FindStringSubmatch(line); m != nil {
		return p.Mode.IntensityFromWkg(parseFloat(m[1])), true
	}
	if v, _, ok := percentage(line); ok {
		return v, true
	}
	return 0, false
}

func (p BikeParser) powerRange(line string) (float64, float64, bool) {
	if m := wattsRangeRe.FindStringSubmatch(line); m != nil {
		return p.Mode.IntensityFromPower(parseFloat(m[1])), p.Mode.IntensityFromPower(parseFloat(m[2])), true
	}
	if m := wkgRangeRe.FindStringSubmatch(line); m != nil {
		return p.Mode.IntensityFromWkg(parseFloat(m[1])), p.Mode.IntensityFromWkg(parseFloat(m[2])), true
	}
	if start, end, _, ok := percentageRange(line); ok {
		return start, end, true
	}
	return 0, 0, false
}

func (p BikeParser) parseLine(line string) (Block, bool) {
	k := classify(line)
	switch k {
	case keywordMessage:
		text, rest := messageText(line)
		return Block{Type: BlockMessage, Text: text, Offset: messageSeconds(rest)}, true

	case keywordSteady:
		b := Block{Type: BlockSteady, Duration: defaultSteadySeconds, Power: defaultPower}
		if v, ok := p.power(line); ok && v > 0 {
			b.Power = v
		}
		if d, ok := duration(line); ok {
			b.Duration = d
		}
		b.Cadence, _ = cadence(line)
		return b, true

	case keywordRamp, keywordWarmup, keywordCooldown:
		b := Block{Type: BlockRamp, Duration: defaultSteadySeconds}
		b.Power, b.EndPower = rampDefaults(k)
		if start, end, ok := p.powerRange(line); ok && start > 0 && end > 0 {
			b.Power, b.EndPower = start, end
		} else if v, ok := p.power(line); ok && v > 0 {
			b.Power = v
		}
		if d, ok := duration(line); ok {
			b.Duration = d
		}
		b.Cadence, _ = cadence(line)
		return b, true

	case keywordInterval:
		b := Block{
			Type:        BlockInterval,
			Repeat:      defaultRepeat,
			Duration:    defaultOnSeconds,
			OffDuration: defaultOffSeconds,
			Power:       defaultPower,
			EndPower:    defaultOffPower,
		}
		if n, ok := repeat(line); ok {
			b.Repeat = n
		}
		if on, off, ok := durationRange(line); ok {
			b.Duration, b.OffDuration = on, off
		} else if d, ok := duration(line); ok {
			b.Duration = d
		}
		if on, off, ok := p.powerRange(line); ok && on > 0 && off > 0 {
			b.Power, b.EndPower = on, off
		} else if v, ok := p.power(line); ok && v > 0 {
			b.Power = v
		}
		if on, off, ok := cadenceRange(line); ok {
			b.Cadence, b.OffCadence = on, off
		} else {
			b.Cadence, _ = cadence(line)
		}
		return b, true

	case keywordFree:
		b := Block{Type: BlockFree, Duration: defaultFreeSeconds}
		if d, ok := duration(line); ok {
			b.Duration = d
		}
		b.Cadence, _ = cadence(line)
		return b, true
	}
	return Block{}, false
}
