// Package drag models the entry drag gesture as an explicit session:
// grab an entry, hover over candidate positions, then drop or cancel.
// The session only tracks view state; the data model is untouched until
// a drop resolves, and cancellation always resets the same way.
package drag

// Half selects which side of a hovered entry the insertion indicator
// lands on, mirroring pointer position relative to the entry's midpoint.
type Half int

const (
	// Above inserts before the hovered entry.
	Above Half = iota
	// Below inserts after the hovered entry.
	Below
)

// Drop describes how a finished gesture should mutate the collection.
type Drop struct {
	// SameDay is true for an intra-day reorder, false for a move.
	SameDay bool

	SourceDate  string
	SourceIndex int

	// TargetDate is the destination day (equal to SourceDate when SameDay).
	TargetDate string

	// InsertIndex is the insertion slot for intra-day reorders, before
	// the removal adjustment is applied.
	InsertIndex int

	// Noop is true when the reorder resolves to the entry's own position:
	// no persist and no re-render should happen.
	Noop bool
}

// Session is the state of one drag gesture. The zero value is idle.
type Session struct {
	active      bool
	sourceDate  string
	sourceIndex int

	// hoverDate/hoverIndex describe the current insertion indicator.
	// hoverIndex is -1 when hovering a different day (inter-day move),
	// where position within the target day is not meaningful.
	hoverDate  string
	hoverIndex int
}

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool { return s.active }

// Source returns the grabbed entry's position. Only meaningful while
// the session is active.
func (s *Session) Source() (date string, index int) {
	return s.sourceDate, s.sourceIndex
}

// Start begins a gesture for the entry at (date, index).
func (s *Session) Start(date string, index int) {
	s.active = true
	s.sourceDate = date
	s.sourceIndex = index
	s.hoverDate = date
	s.hoverIndex = index
}

// HoverEntry moves the insertion indicator next to the entry at
// (date, index): before it for Above, after it for Below. Hovering an
// entry in a different day collapses to a day hover, matching the
// original gesture where intra-day indicators only exist in the source
// day. There is never more than one indicator: each call replaces the
// previous position.
func (s *Session) HoverEntry(date string, index int, half Half) {
	if !s.active {
		return
	}
	if date != s.sourceDate {
		s.HoverDay(date)
		return
	}
	s.hoverDate = date
	if half == Below {
		s.hoverIndex = index + 1
	} else {
		s.hoverIndex = index
	}
}

// HoverDay targets a whole day cell. For the source day the indicator
// moves to the end of the list (length len); for any other day the
// indicator disappears and the gesture becomes an inter-day move.
func (s *Session) HoverDay(date string) {
	if !s.active {
		return
	}
	s.hoverDate = date
	s.hoverIndex = -1
}

// HoverEnd places the indicator at the end of the source day's list.
func (s *Session) HoverEnd(listLen int) {
	if !s.active {
		return
	}
	s.hoverDate = s.sourceDate
	s.hoverIndex = listLen
}

// Indicator returns the current insertion indicator as (date, slot).
// slot is -1 when the hover is an inter-day day target.
func (s *Session) Indicator() (date string, slot int, ok bool) {
	if !s.active {
		return "", 0, false
	}
	return s.hoverDate, s.hoverIndex, true
}

// Resolve finishes the gesture and describes the resulting mutation.
// ok is false when no gesture was active or no valid target was hovered.
// Resolve resets the session either way.
func (s *Session) Resolve() (Drop, bool) {
	if !s.active || s.hoverDate == "" {
		s.Cancel()
		return Drop{}, false
	}

	drop := Drop{
		SourceDate:  s.sourceDate,
		SourceIndex: s.sourceIndex,
		TargetDate:  s.hoverDate,
	}

	if s.hoverDate == s.sourceDate {
		drop.SameDay = true
		drop.InsertIndex = s.hoverIndex
		// Removal shifts everything after the source left by one, so the
		// slot at the entry and the slot after it are both its own spot.
		drop.Noop = s.hoverIndex < 0 ||
			s.hoverIndex == s.sourceIndex ||
			s.hoverIndex == s.sourceIndex+1
	}

	s.Cancel()
	return drop, true
}

// Cancel resets the session to idle. Safe to call repeatedly and when
// no gesture is active.
func (s *Session) Cancel() {
	s.active = false
	s.sourceDate = ""
	s.sourceIndex = 0
	s.hoverDate = ""
	s.hoverIndex = 0
}
