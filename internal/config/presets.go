package config

import "sort"

type Preset struct {
	Name        string
	Description string
	Map         string
}

var Presets = map[string]*Preset{
	"crash": {
		Name:        "crash",
		Description: "two loops joined by intersections; both carts meet head on",
		Map: `/->-\
|   |  /----\
| /-+--+-\  |
| | |  | v  |
\-+-/  \-+--/
  \------/`,
	},
	"survivor": {
		Name:        "survivor",
		Description: "nine carts crash in pairs until one is left",
		Map: `/>-<\
|   |
| /<+-\
| | | v
\>+</ |
  |   ^
  \<->/`,
	},
	"same-tick": {
		Name:        "same-tick",
		Description: "two carts crash and a third keeps moving in the same tick",
		Map: `/--------\
|        |
\->-<-->-/`,
	},
}

func GetPreset(name string) *Preset {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
