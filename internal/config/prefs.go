// Package config loads service settings from the environment and user
// input preferences from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Gesture styles.
const (
	StyleTouchscreen = "touchscreen"
	StyleTouchpad    = "touchpad"
)

// GesturePrefs maps each gesture to an action name.
type GesturePrefs struct {
	SingleTap      string `yaml:"single_tap" json:"single_tap"`
	DoubleTap      string `yaml:"double_tap" json:"double_tap"`
	LongPress      string `yaml:"long_press" json:"long_press"`
	Drag           string `yaml:"drag" json:"drag"`
	Swipe1         string `yaml:"swipe_1finger" json:"swipe_1finger"`
	Swipe2         string `yaml:"swipe_2finger" json:"swipe_2finger"`
	Swipe3         string `yaml:"swipe_3finger" json:"swipe_3finger"`
	DoubleTapSwipe string `yaml:"double_tap_swipe" json:"double_tap_swipe"`
	TwoFingerTap   string `yaml:"two_finger_tap" json:"two_finger_tap"`
	ThreeFingerTap string `yaml:"three_finger_tap" json:"three_finger_tap"`
}

// Prefs are the user input preferences. They are read once per input
// connection and stay immutable for it.
type Prefs struct {
	Gestures         GesturePrefs      `yaml:"gestures" json:"gestures"`
	SwipeSensitivity float32           `yaml:"swipe_sensitivity" json:"swipe_sensitivity"`
	ZoomMin          float32           `yaml:"zoom_min" json:"zoom_min"`
	ZoomMax          float32           `yaml:"zoom_max" json:"zoom_max"`
	MousePassthrough bool              `yaml:"mouse_passthrough" json:"mouse_passthrough"`
	GestureStyle     string            `yaml:"gesture_style" json:"gesture_style"`
	LegacyKeysyms    bool              `yaml:"legacy_keysyms" json:"legacy_keysyms"`
	VideoDisabled    bool              `yaml:"video_disabled" json:"video_disabled"`
	DPI              float32           `yaml:"dpi" json:"dpi"`
	KeyBindings      map[string]string `yaml:"key_bindings,omitempty" json:"key_bindings,omitempty"`
}

// DefaultPrefs returns the preferences used when no file exists.
func DefaultPrefs() Prefs {
	return Prefs{
		Gestures: GesturePrefs{
			SingleTap:      "left-click",
			DoubleTap:      "double-click",
			LongPress:      "right-click",
			Drag:           "remote-drag",
			Swipe1:         "pan",
			Swipe2:         "remote-scroll",
			Swipe3:         "none",
			DoubleTapSwipe: "remote-drag",
			TwoFingerTap:   "right-click",
			ThreeFingerTap: "middle-click",
		},
		SwipeSensitivity: 1,
		ZoomMin:          0.5,
		ZoomMax:          5,
		MousePassthrough: true,
		GestureStyle:     StyleTouchscreen,
		LegacyKeysyms:    true,
		DPI:              160,
	}
}

// LoadPrefs reads YAML preferences from path. Fields missing from the file
// keep their defaults; a missing file yields DefaultPrefs.
func LoadPrefs(path string) (Prefs, error) {
	prefs := DefaultPrefs()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return Prefs{}, fmt.Errorf("read prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	if err := prefs.Validate(); err != nil {
		return Prefs{}, err
	}
	return prefs, nil
}

// SavePrefs validates prefs and writes them to path as YAML.
func SavePrefs(path string, prefs Prefs) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// Validate checks numeric ranges and enumerations. Action names are not
// checked here: unknown actions resolve to "none" when bindings are built.
func (p Prefs) Validate() error {
	if p.SwipeSensitivity <= 0 {
		return fmt.Errorf("swipe_sensitivity must be > 0")
	}
	if p.ZoomMin <= 0 {
		return fmt.Errorf("zoom_min must be > 0")
	}
	if p.ZoomMax < p.ZoomMin {
		return fmt.Errorf("zoom_max must be >= zoom_min")
	}
	if p.DPI < 0 {
		return fmt.Errorf("dpi must be >= 0")
	}
	switch p.GestureStyle {
	case StyleTouchscreen, StyleTouchpad:
	default:
		return fmt.Errorf("gesture_style must be %q or %q", StyleTouchscreen, StyleTouchpad)
	}
	return nil
}
