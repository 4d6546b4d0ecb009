package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarouselNextCyclesBackToStart(t *testing.T) {
	counts := map[int]int{1: 3, 2: 1, 3: 2, 4: 7}
	c := NewCarousel(counts)
	for id, n := range counts {
		for i := 0; i < n; i++ {
			c.Next(id)
		}
		assert.Equal(t, 0, c.Index(id), "project %d", id)
	}
}

func TestCarouselPrevWrapsToLast(t *testing.T) {
	counts := map[int]int{1: 3, 2: 1, 3: 2}
	c := NewCarousel(counts)
	for id, n := range counts {
		c.Prev(id)
		assert.Equal(t, n-1, c.Index(id), "project %d", id)
	}
}

func TestCarouselProjectsAreIndependent(t *testing.T) {
	c := NewCarousel(map[int]int{1: 3, 2: 3})
	c.Jump(2, 2)
	c.Next(1)
	c.Next(1)
	c.Prev(1)
	assert.Equal(t, 1, c.Index(1))
	assert.Equal(t, 2, c.Index(2))
}

func TestCarouselScenario(t *testing.T) {
	c := NewCarousel(map[int]int{1: 3, 2: 1, 3: 2})

	c.Next(1)
	c.Next(1)
	c.Next(1)
	assert.Equal(t, 0, c.Index(1))

	c.Prev(3)
	assert.Equal(t, 1, c.Index(3))

	for i := 0; i < 5; i++ {
		c.Next(2)
		assert.Equal(t, 0, c.Index(2))
		c.Prev(2)
		c.Prev(2)
		assert.Equal(t, 0, c.Index(2))
	}
}

func TestCarouselIgnoresUnknownAndEmptyProjects(t *testing.T) {
	c := NewCarousel(map[int]int{1: 2, 9: 0})

	c.Next(42)
	c.Prev(42)
	c.Jump(42, 1)
	c.Next(9)
	c.Prev(9)

	assert.Empty(t, c.Slides())
	assert.Equal(t, 0, c.Index(9))
}

func TestCarouselJumpIsUnchecked(t *testing.T) {
	c := NewCarousel(map[int]int{1: 3})
	c.Jump(1, 2)
	assert.Equal(t, 2, c.Index(1))
	c.Next(1)
	assert.Equal(t, 0, c.Index(1))
}

func TestViewportThreshold(t *testing.T) {
	v := NewViewport()

	v.Scroll(0)
	assert.False(t, v.PastThreshold)

	v.Scroll(50)
	assert.False(t, v.PastThreshold)

	v.Scroll(51)
	assert.True(t, v.PastThreshold)
	assert.Equal(t, 51.0, v.Offset)
}

func TestViewportActiveSectionScan(t *testing.T) {
	v := NewViewport()
	v.Measure(map[Section]float64{Home: 0, About: 800, Skills: 1600})

	v.Scroll(750)
	assert.Equal(t, About, v.Active)

	v.Scroll(649)
	assert.Equal(t, Home, v.Active)

	v.Scroll(650)
	assert.Equal(t, About, v.Active)

	v.Scroll(1450)
	assert.Equal(t, Skills, v.Active)

	// projects and contact are not mounted and are skipped.
	v.Scroll(100000)
	assert.Equal(t, Skills, v.Active)
}

func TestViewportKeepsActiveWhenNothingQualifies(t *testing.T) {
	v := NewViewport()
	v.Measure(map[Section]float64{About: 800})

	v.Scroll(0)
	assert.Equal(t, Home, v.Active, "default is kept when no section qualifies")

	v.Scroll(700)
	assert.Equal(t, About, v.Active)

	v.Measure(map[Section]float64{About: 5000})
	v.Scroll(10)
	assert.Equal(t, About, v.Active)
}

func TestViewportClampsNegativeOffsets(t *testing.T) {
	v := NewViewport()
	v.Measure(map[Section]float64{Home: 0})
	v.Scroll(-40)
	assert.Equal(t, 0.0, v.Offset)
	assert.False(t, v.PastThreshold)
	assert.Equal(t, Home, v.Active)
}

func TestVisibilityIsMonotonic(t *testing.T) {
	var v Visibility

	assert.True(t, v.Intersect(About, true))
	assert.False(t, v.Intersect(About, true), "second reveal is not new")
	assert.False(t, v.Intersect(About, false))
	assert.False(t, v.Intersect(Section("footer"), true))
	assert.False(t, v.Intersect(Skills, false))

	assert.True(t, v.Visible(About))
	assert.False(t, v.Visible(Skills))

	v.Intersect(Contact, true)
	v.Intersect(Home, true)
	assert.Equal(t, []Section{Home, About, Contact}, v.List())
}

func TestNavigatorTargetAndMenu(t *testing.T) {
	var n Navigator
	n.ToggleMenu()
	require.True(t, n.MenuOpen)

	req, ok := n.ScrollTo(Projects, true, 420, 1000)
	require.True(t, ok)
	assert.Equal(t, 1340.0, req.Top)
	assert.Equal(t, "smooth", req.Behavior)
	assert.False(t, n.MenuOpen)

	again, ok := n.ScrollTo(Projects, true, 420, 1000)
	require.True(t, ok)
	assert.Equal(t, req, again)
}

func TestNavigatorSkipsUnmountedSections(t *testing.T) {
	var n Navigator
	n.ToggleMenu()

	_, ok := n.ScrollTo(Contact, false, 0, 0)
	assert.False(t, ok)
	_, ok = n.ScrollTo(Section("blog"), true, 0, 0)
	assert.False(t, ok)

	assert.True(t, n.MenuOpen, "menu stays open on a no-op")
	assert.Nil(t, n.Last)
}

func TestParseSection(t *testing.T) {
	for _, sec := range Sections {
		got, ok := ParseSection(string(sec))
		assert.True(t, ok)
		assert.Equal(t, sec, got)
	}
	_, ok := ParseSection("Home")
	assert.False(t, ok)
}
