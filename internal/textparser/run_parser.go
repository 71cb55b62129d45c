package textparser

import (
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
)

// RunParser reads running text. Powers are percentages of a reference pace ("90%10K"),
// lengths are durations or distances depending on LengthType, and "i2%" sets an incline.
type RunParser struct {
	LengthType workout.LengthType
}

// ParseRunText parses running workout text for a time or distance workout
func ParseRunText(text string, lengthType workout.LengthType) []Block {
	return RunParser{LengthType: lengthType}.Parse(text)
}

// Parse returns one block per recognised line; blank and unrecognised lines are skipped
func (p RunParser) Parse(text string) []Block {
	var blocks []Block
	for _, line := range lines(text) {
		if b, ok := p.parseLine(line); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (p RunParser) distanceMode() bool {
	return p.LengthType == workout.LengthTypeDistance
}

// length fills Duration or Distance from a single token, keeping the default otherwise
func (p RunParser) length(line string, b *Block) {
	if p.distanceMode() {
		if d, ok := distance(line); ok {
			b.Distance = d
		}
		return
	}
	if d, ok := duration(line); ok {
		b.Duration = d
	}
}

func (p RunParser) lengthRange(line string, b *Block) {
	if p.distanceMode() {
		if on, off, ok := distanceRange(line); ok {
			b.Distance, b.OffDistance = on, off
		} else if d, ok := distance(line); ok {
			b.Distance = d
		}
		return
	}
	if on, off, ok := durationRange(line); ok {
		b.Duration, b.OffDuration = on, off
	} else if d, ok := duration(line); ok {
		b.Duration = d
	}
}

func (p RunParser) base(t BlockType, seconds, meters float64) Block {
	b := Block{Type: t}
	if p.distanceMode() {
		b.Distance = meters
	} else {
		b.Duration = seconds
	}
	return b
}

func (p RunParser) parseLine(line string) (Block, bool) {
	k := classify(line)
	switch k {
	case keywordMessage:
		text, rest := messageText(line)
		b := Block{Type: BlockMessage, Text: text}
		if p.distanceMode() {
			b.Offset, _ = distance(rest)
		} else {
			b.Offset = messageSeconds(rest)
		}
		return b, true

	case keywordSteady:
		b := p.base(BlockSteady, defaultSteadySeconds, defaultSteadyMeters)
		b.Power = defaultPower
		if v, pace, ok := percentage(line); ok && v > 0 {
			b.Power, b.Pace = v, pace
		}
		p.length(line, &b)
		b.Cadence, _ = cadence(line)
		b.Incline, _ = incline(line)
		return b, true

	case keywordRamp, keywordWarmup, keywordCooldown:
		b := p.base(BlockRamp, defaultSteadySeconds, defaultSteadyMeters)
		b.Power, b.EndPower = rampDefaults(k)
		if start, end, pace, ok := percentageRange(line); ok && start > 0 && end > 0 {
			b.Power, b.EndPower, b.Pace = start, end, pace
		} else if v, pace, ok := percentage(line); ok && v > 0 {
			b.Power, b.Pace = v, pace
		}
		p.length(line, &b)
		b.Cadence, _ = cadence(line)
		b.Incline, _ = incline(line)
		return b, true

	case keywordInterval:
		b := p.base(BlockInterval, defaultOnSeconds, defaultOnMeters)
		if p.distanceMode() {
			b.OffDistance = defaultOffMeters
		} else {
			b.OffDuration = defaultOffSeconds
		}
		b.Repeat = defaultRepeat
		b.Power, b.EndPower = defaultPower, defaultOffPower
		if n, ok := repeat(line); ok {
			b.Repeat = n
		}
		p.lengthRange(line, &b)
		if on, off, pace, ok := percentageRange(line); ok && on > 0 && off > 0 {
			b.Power, b.EndPower, b.Pace = on, off, pace
		} else if v, pace, ok := percentage(line); ok && v > 0 {
			b.Power, b.Pace = v, pace
		}
		if on, off, ok := cadenceRange(line); ok {
			b.Cadence, b.OffCadence = on, off
		} else {
			b.Cadence, _ = cadence(line)
		}
		b.Incline, _ = incline(line)
		return b, true

	case keywordFree:
		b := p.base(BlockFree, defaultFreeSeconds, defaultFreeMeters)
		p.length(line, &b)
		b.Cadence, _ = cadence(line)
		return b, true
	}
	return Block{}, false
}
