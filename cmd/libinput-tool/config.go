package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kwm81/libinput/internal/matrix"

	libinput "github.com/kwm81/libinput"
)

// fileConfig is the on-disk shape of a device's configuration, kept
// separate from libinput.DeviceConfig so the YAML surface can use plain
// scalars (strings for enums, a flat 6-number matrix) instead of the
// engine's internal types.
type fileConfig struct {
	Tap            bool      `yaml:"tap"`
	NaturalScroll  bool      `yaml:"natural_scroll"`
	LeftHanded     bool      `yaml:"left_handed"`
	ScrollMethod   string    `yaml:"scroll_method"`
	ScrollButton   uint16    `yaml:"scroll_button"`
	AccelSpeed     float64   `yaml:"accel_speed"`
	Calibration    []float64 `yaml:"calibration"`
}

// loadConfig reads path and converts it to a DeviceConfig, defaulting to
// DefaultDeviceConfig's zero-value behavior for anything the file omits.
func loadConfig(path string) (libinput.DeviceConfig, error) {
	cfg := libinput.DefaultDeviceConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, err
	}

	cfg.TapEnabled = fc.Tap
	cfg.NaturalScrollEnabled = fc.NaturalScroll
	cfg.LeftHandedEnabled = fc.LeftHanded
	cfg.ScrollButton = fc.ScrollButton
	cfg.AccelSpeed = fc.AccelSpeed
	cfg.ScrollMethodWanted = parseScrollMethod(fc.ScrollMethod)
	if len(fc.Calibration) == 6 {
		cfg.Calibration = matrix.Matrix{
			X: [3]float64{fc.Calibration[0], fc.Calibration[1], fc.Calibration[2]},
			Y: [3]float64{fc.Calibration[3], fc.Calibration[4], fc.Calibration[5]},
		}
	}
	return cfg, nil
}

func parseScrollMethod(s string) libinput.ScrollMethod {
	switch s {
	case "two-finger":
		return libinput.ScrollTwoFinger
	case "edge":
		return libinput.ScrollEdge
	case "on-button":
		return libinput.ScrollOnButton
	default:
		return libinput.ScrollNone
	}
}
