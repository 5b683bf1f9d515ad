package label

// Anchor names a fixed label position on the page.
type Anchor string

const (
	BottomRight  Anchor = "bottom-right"
	BottomLeft   Anchor = "bottom-left"
	BottomCenter Anchor = "bottom-center"
	TopRight     Anchor = "top-right"
	TopLeft      Anchor = "top-left"
	TopCenter    Anchor = "top-center"
	Custom       Anchor = "custom"
)

// Anchors lists every recognized anchor, custom included.
var Anchors = []Anchor{BottomRight, BottomLeft, BottomCenter, TopRight, TopLeft, TopCenter, Custom}

// Known reports whether a is a recognized anchor.
func (a Anchor) Known() bool {
	for _, k := range Anchors {
		if a == k {
			return true
		}
	}
	return false
}

// Margins from the page edges used by the named anchors, in points.
const (
	MarginX = 60.0
	MarginY = 40.0
)

// Position is a named anchor, or Custom with percentages of the page size.
type Position struct {
	Anchor   Anchor
	XPercent float64 // 0-100, Custom only
	YPercent float64 // 0-100, Custom only
}

// At returns a named-anchor position.
func At(a Anchor) Position {
	return Position{Anchor: a}
}

// CustomAt returns a custom position at the given percentages.
func CustomAt(xPercent, yPercent float64) Position {
	return Position{Anchor: Custom, XPercent: xPercent, YPercent: yPercent}
}

// Resolve converts p into page coordinates with the origin at the bottom-left
// corner. bottom-* anchors sit at y=MarginY and top-* at height-MarginY.
// Unknown anchors resolve like BottomRight. Out-of-range custom percentages
// are not clamped.
func Resolve(p Position, width, height float64) (x, y float64) {
	switch p.Anchor {
	case BottomLeft:
		return MarginX, MarginY
	case BottomCenter:
		return width / 2, MarginY
	case TopRight:
		return width - MarginX, height - MarginY
	case TopLeft:
		return MarginX, height - MarginY
	case TopCenter:
		return width / 2, height - MarginY
	case Custom:
		return width * p.XPercent / 100, height * p.YPercent / 100
	default:
		return width - MarginX, MarginY
	}
}
