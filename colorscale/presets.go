package colorscale

import "strings"

// Preset is a named gradient.
type Preset struct {
	Name  string
	Stops []Stop
}

// Presets are ready to use three stops gradients.
var Presets = []Preset{
	{Name: "Sunset Blaze", Stops: []Stop{{"#ff6b35", 0}, {"#f7931e", 0.5}, {"#fdc500", 1}}},
	{Name: "Ocean Depths", Stops: []Stop{{"#0077be", 0}, {"#00a8e8", 0.5}, {"#00d4ff", 1}}},
	{Name: "Purple Dream", Stops: []Stop{{"#6a0572", 0}, {"#a91079", 0.5}, {"#e91e63", 1}}},
	{Name: "Forest Green", Stops: []Stop{{"#1b5e20", 0}, {"#388e3c", 0.5}, {"#66bb6a", 1}}},
	{Name: "Warm Grayscale", Stops: []Stop{{"#212121", 0}, {"#616161", 0.5}, {"#9e9e9e", 1}}},
	{Name: "Fire & Ice", Stops: []Stop{{"#ff5722", 0}, {"#9c27b0", 0.5}, {"#2196f3", 1}}},
}

// PresetByName performs a case insensitive lookup in Presets.
// The returned stops are a copy.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			p.Stops = append([]Stop(nil), p.Stops...)
			return p, true
		}
	}
	return Preset{}, false
}
