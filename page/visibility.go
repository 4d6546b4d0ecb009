package page

// Visibility records sections that have entered the viewport at least once.
// Entries are never removed.
type Visibility struct {
	seen map[Section]bool
}

// Intersect marks sec as revealed when the notification reports an
// intersection. It reports whether sec was newly added.
func (v *Visibility) Intersect(sec Section, intersecting bool) bool {
	if !intersecting {
		return false
	}
	if _, ok := ParseSection(string(sec)); !ok {
		return false
	}
	if v.seen == nil {
		v.seen = make(map[Section]bool)
	}
	if v.seen[sec] {
		return false
	}
	v.seen[sec] = true
	return true
}

// Visible reports whether sec has been revealed.
func (v *Visibility) Visible(sec Section) bool {
	return v.seen[sec]
}

// List returns the revealed sections in page order.
func (v *Visibility) List() []Section {
	out := make([]Section, 0, len(v.seen))
	for _, sec := range Sections {
		if v.seen[sec] {
			out = append(out, sec)
		}
	}
	return out
}
