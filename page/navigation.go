package page

// ScrollRequest asks the client to scroll to Top.
type ScrollRequest struct {
	Section  Section `json:"section"`
	Top      float64 `json:"top"`
	Behavior string  `json:"behavior"`
}

// Navigator computes scroll destinations and owns the mobile menu flag.
type Navigator struct {
	MenuOpen bool
	Last     *ScrollRequest
}

// ToggleMenu flips the mobile menu.
func (n *Navigator) ToggleMenu() {
	n.MenuOpen = !n.MenuOpen
}

// ScrollTo targets sec given the element's current top relative to the
// viewport and the page scroll offset. Sections that are not mounted are
// skipped without error. The menu is closed on success.
func (n *Navigator) ScrollTo(sec Section, mounted bool, elementTop, pageOffset float64) (ScrollRequest, bool) {
	if _, ok := ParseSection(string(sec)); !ok || !mounted {
		return ScrollRequest{}, false
	}
	req := ScrollRequest{
		Section:  sec,
		Top:      elementTop + pageOffset - HeaderHeight,
		Behavior: "smooth",
	}
	n.Last = &req
	n.MenuOpen = false
	return req, true
}
