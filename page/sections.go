// Package page models the interactive state of the portfolio page: scroll
// tracking, one-way section reveals, per-project carousels and header-offset
// navigation. State is mutated only through State.Apply; an Actor serializes
// the events of one visitor.
package page

import "time"

// Section identifies one of the fixed regions of the page.
type Section string

const (
	Home     Section = "home"
	About    Section = "about"
	Skills   Section = "skills"
	Projects Section = "projects"
	Contact  Section = "contact"
)

// Sections is the page order shared with the renderer's anchors.
var Sections = []Section{Home, About, Skills, Projects, Contact}

// ParseSection returns the section named s.
func ParseSection(s string) (Section, bool) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

const (
	// ScrolledThreshold is the offset past which the header switches to its compact style.
	ScrolledThreshold = 50
	// ActiveLookahead is added to the offset before comparing with section tops.
	ActiveLookahead = 150
	// HeaderHeight is subtracted from navigation targets so the fixed header does not cover the section.
	HeaderHeight = 80
	// ObserveDelay is how long the client waits after mount before observing sections.
	ObserveDelay = 100 * time.Millisecond
)

// IntersectionOptions configures the client's intersection observer.
type IntersectionOptions struct {
	Threshold  float64 `json:"threshold"`
	RootMargin string  `json:"rootMargin"`
	DelayMs    int64   `json:"delayMs"`
}

// ObserverOptions makes a section count as visible slightly before it fully enters view.
var ObserverOptions = IntersectionOptions{
	Threshold:  0.15,
	RootMargin: "0px 0px -100px 0px",
	DelayMs:    ObserveDelay.Milliseconds(),
}
