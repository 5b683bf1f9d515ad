package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder canvas shown before any preview exists.
const (
	PlaceholderWidth  = 600
	PlaceholderHeight = 800
)

var (
	placeholderBackground = color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
	placeholderText       = color.RGBA{R: 0x4a, G: 0x55, B: 0x68, A: 0xff}
)

// PlaceholderLines is the message drawn on the placeholder canvas.
var PlaceholderLines = []string{
	"Upload a PDF file,",
	"then generate a preview to see the result",
}

// Placeholder returns the empty-state frame: a light canvas with the
// placeholder message centred on it. PageNum is 0.
func Placeholder() *Frame {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: placeholderBackground}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: placeholderText},
		Face: face,
	}

	baselines := []int{PlaceholderHeight/2 - 30, PlaceholderHeight/2 + 10}
	for i, line := range PlaceholderLines {
		width := d.MeasureString(line).Round()
		d.Dot = fixed.P((PlaceholderWidth-width)/2, baselines[i%len(baselines)])
		d.DrawString(line)
	}

	var buf bytes.Buffer
	// encoding an in-memory RGBA image cannot fail
	_ = png.Encode(&buf, img)
	return &Frame{PageNum: 0, Width: PlaceholderWidth, Height: PlaceholderHeight, PNG: buf.Bytes()}
}
