package config

import "sort"

// Presets build fresh configs so callers may modify what they get back.
var Presets = map[string]func() *Config{
	"classic": DefaultConfig,
	"inner": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = cfg.Bodies[:4]
		cfg.Camera.Position = [3]float64{0, 6, 16}
		return cfg
	},
	"giants": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = cfg.Bodies[4:]
		cfg.Camera.Position = [3]float64{0, 16, 45}
		return cfg
	},
	"fast": func() *Config {
		cfg := DefaultConfig()
		for i := range cfg.Bodies {
			cfg.Bodies[i].Speed = cfg.Controls.SpeedMax
		}
		return cfg
	},
	"aligned": func() *Config {
		cfg := DefaultConfig()
		for i := range cfg.Bodies {
			zero := 0.0
			cfg.Bodies[i].Phase = &zero
		}
		cfg.Seed = 1
		return cfg
	},
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
