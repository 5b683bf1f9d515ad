package label

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned when user-supplied options cannot be resolved.
var ErrInvalidOption = errors.New("invalid numbering option")

// DefaultOpacity is applied when no opacity is given.
const DefaultOpacity = 0.9

// RGB is a color with each channel in [0, 1].
type RGB struct {
	R, G, B float64
}

// Black is the zero RGB value.
var Black = RGB{}

// ParseHexColor parses "#rrggbb" (the leading # is optional) into channels
// normalized from 8-bit values.
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidOption, s)
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidOption, s)
		}
		ch[i] = float64(v) / 255
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

func channel8(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return int(v*255 + 0.5)
	}
}

// Options fully describe one numbering operation. They are built once per
// operation and not modified afterwards.
type Options struct {
	StartValue       int
	Format           Format
	IncludeFirstPage bool
	FontSize         int
	Color            RGB
	Position         Position
	Opacity          float64
}

// RawOptions is the options surface as supplied by users: config files,
// CLI flags and HTTP bodies.
type RawOptions struct {
	StartValue       int      `json:"start_value" mapstructure:"start_value" yaml:"start_value"`
	Format           string   `json:"format" mapstructure:"format" yaml:"format"`
	IncludeFirstPage bool     `json:"include_first_page" mapstructure:"include_first_page" yaml:"include_first_page"`
	FontSize         int      `json:"font_size" mapstructure:"font_size" yaml:"font_size"`
	FontColor        string   `json:"font_color" mapstructure:"font_color" yaml:"font_color"`
	Position         string   `json:"position" mapstructure:"position" yaml:"position"`
	CustomX          float64  `json:"custom_x" mapstructure:"custom_x" yaml:"custom_x"`
	CustomY          float64  `json:"custom_y" mapstructure:"custom_y" yaml:"custom_y"`
	Opacity          *float64 `json:"opacity,omitempty" mapstructure:"opacity" yaml:"opacity,omitempty"`
}

// DefaultRawOptions mirrors the initial state of the options form.
func DefaultRawOptions() RawOptions {
	return RawOptions{
		StartValue:       1,
		Format:           string(FormatArabic),
		IncludeFirstPage: true,
		FontSize:         12,
		FontColor:        "#000000",
		Position:         string(BottomRight),
		CustomX:          50,
		CustomY:          5,
	}
}

// Clone returns a copy of r that shares no memory with it.
func (r RawOptions) Clone() RawOptions {
	if r.Opacity != nil {
		v := *r.Opacity
		r.Opacity = &v
	}
	return r
}

// Resolve validates r and converts it to Options. Unknown format and
// position tokens are kept as-is; the formatter and resolver fall back for
// them. The custom percentages are only checked when Position is custom.
func (r RawOptions) Resolve() (Options, error) {
	if r.FontSize <= 0 {
		return Options{}, fmt.Errorf("%w: font size must be positive, got %d", ErrInvalidOption, r.FontSize)
	}

	color := Black
	if r.FontColor != "" {
		c, err := ParseHexColor(r.FontColor)
		if err != nil {
			return Options{}, err
		}
		color = c
	}

	opacity := DefaultOpacity
	if r.Opacity != nil {
		opacity = *r.Opacity
		if opacity < 0 || opacity > 1 {
			return Options{}, fmt.Errorf("%w: opacity must be within [0,1], got %g", ErrInvalidOption, opacity)
		}
	}

	format := Format(r.Format)
	if format == "" {
		format = FormatArabic
	}

	pos := At(Anchor(r.Position))
	if pos.Anchor == "" {
		pos.Anchor = BottomRight
	}
	if pos.Anchor == Custom {
		if r.CustomX < 0 || r.CustomX > 100 || r.CustomY < 0 || r.CustomY > 100 {
			return Options{}, fmt.Errorf("%w: custom position must be within 0-100%%, got (%g, %g)",
				ErrInvalidOption, r.CustomX, r.CustomY)
		}
		pos = CustomAt(r.CustomX, r.CustomY)
	}

	return Options{
		StartValue:       r.StartValue,
		Format:           format,
		IncludeFirstPage: r.IncludeFirstPage,
		FontSize:         r.FontSize,
		Color:            color,
		Position:         pos,
		Opacity:          opacity,
	}, nil
}
