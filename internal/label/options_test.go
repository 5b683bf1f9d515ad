package label

import (
	"errors"
	"math"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 1 || c.B != 0 || math.Abs(c.G-128.0/255) > 1e-9 {
		t.Errorf("unexpected color %+v", c)
	}
	if c.Hex() != "#ff8000" {
		t.Errorf("expected #ff8000, got %s", c.Hex())
	}

	if _, err := ParseHexColor("00FF00"); err != nil {
		t.Errorf("expected bare hex to parse, got %v", err)
	}

	for _, bad := range []string{"", "#fff", "#gg0000", "red"} {
		if _, err := ParseHexColor(bad); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("ParseHexColor(%q): expected ErrInvalidOption, got %v", bad, err)
		}
	}
}

func TestRawOptions_Resolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		o, err := DefaultRawOptions().Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Opacity != DefaultOpacity {
			t.Errorf("expected default opacity %g, got %g", DefaultOpacity, o.Opacity)
		}
		if o.Position.Anchor != BottomRight {
			t.Errorf("expected bottom-right, got %s", o.Position.Anchor)
		}
		if o.Format != FormatArabic {
			t.Errorf("expected arabic, got %s", o.Format)
		}
	})

	t.Run("custom position", func(t *testing.T) {
		r := DefaultRawOptions()
		r.Position = "custom"
		r.CustomX, r.CustomY = 25, 75
		o, err := r.Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Position != CustomAt(25, 75) {
			t.Errorf("unexpected position %+v", o.Position)
		}
	})

	t.Run("custom percentages ignored for anchors", func(t *testing.T) {
		r := DefaultRawOptions()
		r.CustomX = 500
		if _, err := r.Resolve(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown tokens pass through", func(t *testing.T) {
		r := DefaultRawOptions()
		r.Format = "roman"
		r.Position = "middle"
		o, err := r.Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Format != "roman" || o.Position.Anchor != "middle" {
			t.Errorf("unexpected options %+v", o)
		}
	})

	invalid := map[string]func(*RawOptions){
		"zero font size":    func(r *RawOptions) { r.FontSize = 0 },
		"bad color":         func(r *RawOptions) { r.FontColor = "blue" },
		"opacity too high":  func(r *RawOptions) { v := 1.5; r.Opacity = &v },
		"custom x too high": func(r *RawOptions) { r.Position = "custom"; r.CustomX = 101 },
		"custom y negative": func(r *RawOptions) { r.Position = "custom"; r.CustomY = -1 },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			r := DefaultRawOptions()
			mutate(&r)
			if _, err := r.Resolve(); !errors.Is(err, ErrInvalidOption) {
				t.Errorf("expected ErrInvalidOption, got %v", err)
			}
		})
	}
}

func TestRawOptions_Clone(t *testing.T) {
	opacity := 0.5
	r := DefaultRawOptions()
	r.Opacity = &opacity

	c := r.Clone()
	*c.Opacity = 0.1
	c.StartValue = 9
	if opacity != 0.5 || r.StartValue != 1 {
		t.Errorf("expected original unchanged, got opacity %g start %d", opacity, r.StartValue)
	}

	if got := DefaultRawOptions().Clone().Opacity; got != nil {
		t.Errorf("expected nil opacity to stay nil, got %v", *got)
	}
}
