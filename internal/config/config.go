// Package config loads render options from a JSON file.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Options are the user-tunable rendering settings.
type Options struct {
	// TrueColor enables 24-bit color output.
	TrueColor bool

	// MaxFPS caps the frame rate of the render loop.
	MaxFPS int

	// AltScreen renders on the terminal's alternate screen buffer.
	AltScreen bool

	// HideCursor hides the cursor while rendering.
	HideCursor bool

	// RedrawThreshold is the changed-row ratio above which a frame
	// is repainted whole instead of diffed.
	RedrawThreshold float64
}

// Default returns the standard options.
func Default() Options {
	return Options{
		TrueColor:       true,
		MaxFPS:          60,
		AltScreen:       true,
		HideCursor:      true,
		RedrawThreshold: 0.5,
	}
}

// Load reads options from a JSON file. A missing file yields the
// defaults; missing fields keep their default values. Malformed JSON
// or out-of-range values are configuration errors.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return opts, fmt.Errorf("config: %s is not valid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	if v := doc.Get("true_color"); v.Exists() {
		opts.TrueColor = v.Bool()
	}
	if v := doc.Get("max_fps"); v.Exists() {
		opts.MaxFPS = int(v.Int())
	}
	if v := doc.Get("alt_screen"); v.Exists() {
		opts.AltScreen = v.Bool()
	}
	if v := doc.Get("hide_cursor"); v.Exists() {
		opts.HideCursor = v.Bool()
	}
	if v := doc.Get("redraw_threshold"); v.Exists() {
		opts.RedrawThreshold = v.Float()
	}

	if opts.MaxFPS <= 0 {
		return opts, fmt.Errorf("config: max_fps must be positive, got %d", opts.MaxFPS)
	}
	if opts.RedrawThreshold <= 0 || opts.RedrawThreshold > 1 {
		return opts, fmt.Errorf("config: redraw_threshold must be in (0,1], got %g", opts.RedrawThreshold)
	}
	return opts, nil
}

// WriteDefault writes the default options to path as JSON.
func WriteDefault(path string) error {
	opts := Default()
	json := "{}"
	var err error
	for _, field := range []struct {
		key   string
		value any
	}{
		{"true_color", opts.TrueColor},
		{"max_fps", opts.MaxFPS},
		{"alt_screen", opts.AltScreen},
		{"hide_cursor", opts.HideCursor},
		{"redraw_threshold", opts.RedrawThreshold},
	} {
		json, err = sjson.Set(json, field.key, field.value)
		if err != nil {
			return fmt.Errorf("config: build defaults: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(json+"\n"), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
