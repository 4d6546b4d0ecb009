package page

// Event is a typed message applied to a State.
type Event interface {
	event()
}

// ScrollTick reports the page scroll offset. Tops, when present, are fresh
// section measurements merged before the offset is evaluated.
type ScrollTick struct {
	Offset float64
	Tops   map[Section]float64
}

// SectionsMeasured reports section top offsets after mount or resize.
type SectionsMeasured struct {
	Tops map[Section]float64
}

// SectionIntersected is one intersection observer notification.
type SectionIntersected struct {
	Section      Section
	Intersecting bool
}

// Direction of a carousel step.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// CarouselAdvance steps a project's carousel by one image.
type CarouselAdvance struct {
	Project   int
	Direction Direction
}

// CarouselJump selects an image directly from the dot indicators.
type CarouselJump struct {
	Project int
	Index   int
}

// NavigateTo requests a smooth scroll to Section. ElementTop is the
// section's top relative to the viewport, nil when the element is not mounted.
type NavigateTo struct {
	Section    Section
	ElementTop *float64
	PageOffset float64
}

// MenuToggled opens or closes the mobile menu.
type MenuToggled struct{}

func (ScrollTick) event()         {}
func (SectionsMeasured) event()   {}
func (SectionIntersected) event() {}
func (CarouselAdvance) event()    {}
func (CarouselJump) event()       {}
func (NavigateTo) event()         {}
func (MenuToggled) event()        {}

// State is the page state of one visitor.
type State struct {
	viewport   Viewport
	visibility Visibility
	carousel   Carousel
	nav        Navigator
}

// NewState returns the state of a freshly loaded page for projects with the
// given image counts.
func NewState(imageCounts map[int]int) *State {
	return &State{
		viewport: NewViewport(),
		carousel: NewCarousel(imageCounts),
	}
}

// Result is what applying an event produced.
type Result struct {
	Snapshot Snapshot
	// Scroll is set when a NavigateTo event resolved to a destination.
	Scroll *ScrollRequest
	// Revealed lists sections that became visible with this event.
	Revealed []Section
}

// Apply mutates the state for a single event. It is the only mutation path.
func (s *State) Apply(e Event) Result {
	var res Result
	switch ev := e.(type) {
	case ScrollTick:
		if len(ev.Tops) > 0 {
			s.viewport.Measure(ev.Tops)
		}
		s.viewport.Scroll(ev.Offset)
	case SectionsMeasured:
		s.viewport.Measure(ev.Tops)
	case SectionIntersected:
		if s.visibility.Intersect(ev.Section, ev.Intersecting) {
			res.Revealed = append(res.Revealed, ev.Section)
		}
	case CarouselAdvance:
		if ev.Direction == Backward {
			s.carousel.Prev(ev.Project)
		} else {
			s.carousel.Next(ev.Project)
		}
	case CarouselJump:
		s.carousel.Jump(ev.Project, ev.Index)
	case NavigateTo:
		var top float64
		if ev.ElementTop != nil {
			top = *ev.ElementTop
		}
		if req, ok := s.nav.ScrollTo(ev.Section, ev.ElementTop != nil, top, ev.PageOffset); ok {
			res.Scroll = &req
		}
	case MenuToggled:
		s.nav.ToggleMenu()
	}
	res.Snapshot = s.Snapshot()
	return res
}

// Snapshot returns an immutable copy of the state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Offset:        s.viewport.Offset,
		PastThreshold: s.viewport.PastThreshold,
		Active:        s.viewport.Active,
		Visible:       s.visibility.List(),
		Slides:        s.carousel.Slides(),
		MenuOpen:      s.nav.MenuOpen,
	}
	if s.nav.Last != nil {
		last := *s.nav.Last
		snap.LastScroll = &last
	}
	return snap
}

// Snapshot is a read-only view of a State handed to handlers and templates.
type Snapshot struct {
	Offset        float64        `json:"offset"`
	PastThreshold bool           `json:"pastThreshold"`
	Active        Section        `json:"active"`
	Visible       []Section      `json:"visible"`
	Slides        map[int]int    `json:"slides"`
	MenuOpen      bool           `json:"menuOpen"`
	LastScroll    *ScrollRequest `json:"lastScroll,omitempty"`
}

// Slide returns the image index of project id.
func (s Snapshot) Slide(id int) int {
	return s.Slides[id]
}

// IsVisible reports whether sec has been revealed.
func (s Snapshot) IsVisible(sec Section) bool {
	for _, v := range s.Visible {
		if v == sec {
			return true
		}
	}
	return false
}
