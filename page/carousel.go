package page

// Carousel holds the displayed image index of each project. Projects that
// were never touched are at index 0.
type Carousel struct {
	counts map[int]int
	slides map[int]int
}

// NewCarousel builds a carousel for projects with the given image counts,
// keyed by project id.
func NewCarousel(counts map[int]int) Carousel {
	c := Carousel{
		counts: make(map[int]int, len(counts)),
		slides: make(map[int]int),
	}
	for id, n := range counts {
		c.counts[id] = n
	}
	return c
}

// Index returns the current image index of project p.
func (c *Carousel) Index(p int) int {
	return c.slides[p]
}

// Next advances project p, wrapping to the first image.
// Unknown projects and projects without images are left untouched.
func (c *Carousel) Next(p int) {
	n, ok := c.counts[p]
	if !ok || n < 1 {
		return
	}
	c.slides[p] = (c.slides[p] + 1) % n
}

// Prev steps project p back, wrapping to the last image.
func (c *Carousel) Prev(p int) {
	n, ok := c.counts[p]
	if !ok || n < 1 {
		return
	}
	if cur := c.slides[p]; cur == 0 {
		c.slides[p] = n - 1
	} else {
		c.slides[p] = cur - 1
	}
}

// Jump sets the index of project p directly. The index is not bounds checked;
// callers pass indices of the dot indicators they rendered.
func (c *Carousel) Jump(p, i int) {
	if _, ok := c.counts[p]; !ok {
		return
	}
	c.slides[p] = i
}

// Slides returns a copy of the indices that have been set.
func (c *Carousel) Slides() map[int]int {
	out := make(map[int]int, len(c.slides))
	for id, i := range c.slides {
		out[id] = i
	}
	return out
}
