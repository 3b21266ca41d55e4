package config

import "sort"

var Presets = map[string]*Config{
	"tiny": {
		ArraySize: 5, Speed: 1, Seed: 7,
	},
	"classic": {
		ArraySize: DefaultArraySize, Speed: DefaultSpeed,
	},
	"max": {
		ArraySize: MaxArraySize, Speed: MaxSpeed,
	},
	"reversed": {
		Speed:  2,
		Values: []int{90, 80, 70, 60, 50, 40, 30, 20},
	},
	"sorted": {
		Speed:  2,
		Values: []int{12, 24, 36, 48, 60, 72},
	},
	"duplicates": {
		Speed:  1,
		Values: []int{50, 20, 80, 20, 50},
	},
}

// GetPreset returns a copy of the named preset layered over the defaults,
// or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	if p.ArraySize != 0 {
		cfg.ArraySize = p.ArraySize
	}
	if p.Speed != 0 {
		cfg.Speed = p.Speed
	}
	cfg.Seed = p.Seed
	if len(p.Values) > 0 {
		cfg.Values = append([]int(nil), p.Values...)
		cfg.ArraySize = len(p.Values)
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
