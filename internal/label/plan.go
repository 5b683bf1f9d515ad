package label

// PageGeometry is the size of one page in points.
type PageGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Instruction is a single label to draw.
type Instruction struct {
	PageIndex int     `json:"page_index"` // 0-based
	Number    int     `json:"number"`     // display number before formatting
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Plan is the ordered list of labels for one document. Pages that receive no
// label are absent from Instructions; PageCount still counts them.
type Plan struct {
	PageCount    int           `json:"page_count"`
	Instructions []Instruction `json:"instructions"`
}

// Len returns the number of labels in the plan.
func (p Plan) Len() int {
	return len(p.Instructions)
}

// ForPage returns the instruction for page index i, if any.
func (p Plan) ForPage(i int) (Instruction, bool) {
	for _, in := range p.Instructions {
		if in.PageIndex == i {
			return in, true
		}
		if in.PageIndex > i {
			break
		}
	}
	return Instruction{}, false
}

// DisplayNumber returns the number shown on page index i.
//
// When the first page is excluded the second page shows StartValue, so the
// numbering continues from the first labeled page rather than the first
// physical one. With StartValue 0 this yields -1 for the (skipped) first page
// and 0 for the second; that is kept as-is.
func DisplayNumber(i int, o Options) int {
	if o.IncludeFirstPage {
		return o.StartValue + i
	}
	return o.StartValue + i - 1
}

// Build computes the plan for a document with the given page geometries.
// Each page uses its own size, so mixed page sizes are handled.
func Build(geoms []PageGeometry, o Options) Plan {
	total := len(geoms)
	plan := Plan{
		PageCount:    total,
		Instructions: make([]Instruction, 0, total),
	}
	for i, g := range geoms {
		if !o.IncludeFirstPage && i == 0 {
			continue
		}
		n := DisplayNumber(i, o)
		x, y := Resolve(o.Position, g.Width, g.Height)
		plan.Instructions = append(plan.Instructions, Instruction{
			PageIndex: i,
			Number:    n,
			Text:      FormatNumber(n, o.Format, total),
			X:         x,
			Y:         y,
		})
	}
	return plan
}
