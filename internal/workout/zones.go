package workout

// Zone is a named intensity band
type Zone struct {
	Name string
	Min  float64
	Max  float64
}

// Zones are ordered from easiest to hardest. Bounds are inclusive on Min.
var Zones = []Zone{
	{Name: "Z1", Min: 0.1, Max: 0.6},
	{Name: "Z2", Min: 0.6, Max: 0.75},
	{Name: "Z3", Min: 0.75, Max: 0.9},
	{Name: "Z4", Min: 0.9, Max: 1.05},
	{Name: "Z5", Min: 1.05, Max: 1.18},
	{Name: "Z6", Min: 1.18, Max: 10},
}

// MinIntensity is the floor below which steady intensities are not accepted
var MinIntensity = Zones[0].Min

// ZoneFor returns the zone containing intensity. Values below Z1 map to Z1 and values
// above Z6 map to Z6.
func ZoneFor(intensity float64) Zone {
	for _, z := range Zones {
		if intensity < z.Max {
			return z
		}
	}
	return Zones[len(Zones)-1]
}
