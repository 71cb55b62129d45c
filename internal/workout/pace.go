package workout

import "fmt"

// Pace selects which reference running effort scales a run intensity into speed
type Pace int

const (
	PaceOneMile Pace = iota
	Pace5K
	Pace10K
	PaceHalfMarathon
	PaceMarathon
)

// AllPaces lists the paces in file-format order (the `pace` attribute is the index)
var AllPaces = []Pace{PaceOneMile, Pace5K, Pace10K, PaceHalfMarathon, PaceMarathon}

var paceNames = [...]string{"1M", "5K", "10K", "HM", "M"}

// ReferenceDistances holds the race distance in meters for each pace
var ReferenceDistances = [...]float64{1609.344, 5000, 10000, 21097.5, 42195}

func (p Pace) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pace(%d)", int(p))
	}
	return paceNames[p]
}

// Valid reports whether p is one of the five reference efforts
func (p Pace) Valid() bool {
	return p >= PaceOneMile && p <= PaceMarathon
}

// ReferenceDistance returns the race distance in meters for p
func (p Pace) ReferenceDistance() float64 {
	if !p.Valid() {
		return ReferenceDistances[PaceOneMile]
	}
	return ReferenceDistances[p]
}

// ParsePace maps the short names 1M, 5K, 10K, HM and M back to a Pace
func ParsePace(s string) (Pace, bool) {
	for i, name := range paceNames {
		if name == s {
			return Pace(i), true
		}
	}
	return PaceOneMile, false
}
