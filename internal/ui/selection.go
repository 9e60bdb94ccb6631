package ui

// Selection is an optional index into the current result list.
type Selection struct {
	index int
	set   bool
}

// Index returns the selected index and whether anything is selected.
func (s Selection) Index() (int, bool) {
	return s.index, s.set
}

// Next moves down with wraparound. With nothing selected it selects the
// first item; with no items it does nothing.
func (s *Selection) Next(count int) {
	if count <= 0 {
		return
	}
	if !s.set {
		s.index, s.set = 0, true
		return
	}
	s.index = (s.index + 1) % count
}

// Prev moves up with wraparound. With nothing selected it selects the first
// item, like Next.
func (s *Selection) Prev(count int) {
	if count <= 0 {
		return
	}
	if !s.set {
		s.index, s.set = 0, true
		return
	}
	s.index = (s.index + count - 1) % count
}

// Reset clears the selection.
func (s *Selection) Reset() {
	*s = Selection{}
}
