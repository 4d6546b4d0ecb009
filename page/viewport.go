package page

// Viewport tracks the scroll offset, the compact-header flag and the
// section currently under the header.
type Viewport struct {
	Offset        float64
	PastThreshold bool
	Active        Section

	// tops holds each mounted section's top offset relative to the document.
	tops map[Section]float64
}

// NewViewport returns a viewport at the top of the page with Home active.
func NewViewport() Viewport {
	return Viewport{Active: Home, tops: make(map[Section]float64)}
}

// Measure records section top offsets. Unknown sections are ignored.
func (v *Viewport) Measure(tops map[Section]float64) {
	if v.tops == nil {
		v.tops = make(map[Section]float64, len(tops))
	}
	for sec, top := range tops {
		if _, ok := ParseSection(string(sec)); ok {
			v.tops[sec] = top
		}
	}
}

// Top returns the recorded top offset of sec, if it is mounted.
func (v *Viewport) Top(sec Section) (float64, bool) {
	top, ok := v.tops[sec]
	return top, ok
}

// Scroll recomputes all three fields for a single scroll tick.
func (v *Viewport) Scroll(offset float64) {
	if offset < 0 {
		offset = 0
	}
	v.Offset = offset
	v.PastThreshold = offset > ScrolledThreshold

	mark := offset + ActiveLookahead
	for i := len(Sections) - 1; i >= 0; i-- {
		top, ok := v.tops[Sections[i]]
		if !ok {
			continue
		}
		if mark >= top {
			v.Active = Sections[i]
			return
		}
	}
}
