package views

// Scroller keeps a cursor visible in a window of fixed height over a list,
// scrolling line by line as the cursor moves past an edge.
type Scroller struct {
	height int
	top    int
	cursor int
	total  int
}

const defaultHeight = 10

// NewScroller creates a scroller showing height rows
func NewScroller(height int) *Scroller {
	s := &Scroller{}
	s.SetHeight(height)
	return s
}

// SetHeight changes the number of visible rows
func (s *Scroller) SetHeight(height int) {
	if height <= 0 {
		height = defaultHeight
	}
	s.height = height
	s.follow()
}

// SetTotal sets the list length, pulling the cursor back onto the list
func (s *Scroller) SetTotal(total int) {
	s.total = total
	s.SetCursor(s.cursor)
}

// Cursor returns the selected index
func (s *Scroller) Cursor() int { return s.cursor }

// SetCursor selects index i, clamped to the list
func (s *Scroller) SetCursor(i int) {
	s.cursor = max(0, min(i, s.total-1))
	s.follow()
}

// Move shifts the cursor by delta rows and reports whether it moved
func (s *Scroller) Move(delta int) bool {
	before := s.cursor
	s.SetCursor(s.cursor + delta)
	return s.cursor != before
}

// PageDown moves the cursor one window down
func (s *Scroller) PageDown() bool { return s.Move(s.height) }

// PageUp moves the cursor one window up
func (s *Scroller) PageUp() bool { return s.Move(-s.height) }

// VisibleRange returns the half open range of rows on screen
func (s *Scroller) VisibleRange() (start, end int) {
	return s.top, min(s.top+s.height, s.total)
}

// Scrollable reports whether the list is longer than the window
func (s *Scroller) Scrollable() bool {
	return s.total > s.height
}

// Reset empties the scroller
func (s *Scroller) Reset() {
	s.top, s.cursor, s.total = 0, 0, 0
}

func (s *Scroller) follow() {
	switch {
	case s.cursor < s.top:
		s.top = s.cursor
	case s.cursor >= s.top+s.height:
		s.top = s.cursor - s.height + 1
	}
	// never leave blank rows below the list
	if s.top > 0 && s.top+s.height > s.total {
		s.top = max(0, s.total-s.height)
	}
}
