package drag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/drag"
)

func TestIntraDayReorder(t *testing.T) {
	var s drag.Session
	s.Start("2024-03-04", 0)
	require.True(t, s.Active())

	s.HoverEntry("2024-03-04", 2, drag.Above)
	date, slot, ok := s.Indicator()
	require.True(t, ok)
	assert.Equal(t, "2024-03-04", date)
	assert.Equal(t, 2, slot)

	d, ok := s.Resolve()
	require.True(t, ok)
	assert.True(t, d.SameDay)
	assert.Equal(t, 0, d.SourceIndex)
	assert.Equal(t, 2, d.InsertIndex)
	assert.False(t, d.Noop)
	assert.False(t, s.Active(), "resolve resets the session")
}

func TestBelowMidpointInsertsAfter(t *testing.T) {
	var s drag.Session
	s.Start("2024-03-04", 0)
	s.HoverEntry("2024-03-04", 2, drag.Below)

	d, ok := s.Resolve()
	require.True(t, ok)
	assert.Equal(t, 3, d.InsertIndex)
}

func TestDropOnOwnSlotIsNoop(t *testing.T) {
	for _, half := range []drag.Half{drag.Above, drag.Below} {
		var s drag.Session
		s.Start("2024-03-04", 1)
		s.HoverEntry("2024-03-04", 1, half)

		d, ok := s.Resolve()
		require.True(t, ok)
		assert.True(t, d.SameDay)
		assert.True(t, d.Noop, "dropping an entry onto itself must not persist")
	}
}

func TestSlotAfterSourceIsNoop(t *testing.T) {
	// The slot right after the source collapses onto the source position
	// once the removal shift is applied.
	var s drag.Session
	s.Start("2024-03-04", 1)
	s.HoverEntry("2024-03-04", 2, drag.Above)

	d, ok := s.Resolve()
	require.True(t, ok)
	assert.True(t, d.Noop)
}

func TestInterDayMove(t *testing.T) {
	var s drag.Session
	s.Start("2024-03-04", 1)
	s.HoverDay("2024-03-06")

	_, slot, ok := s.Indicator()
	require.True(t, ok)
	assert.Equal(t, -1, slot, "no intra-day indicator on a foreign day")

	d, ok := s.Resolve()
	require.True(t, ok)
	assert.False(t, d.SameDay)
	assert.Equal(t, "2024-03-04", d.SourceDate)
	assert.Equal(t, "2024-03-06", d.TargetDate)
}

func TestHoverForeignEntryBecomesDayHover(t *testing.T) {
	var s drag.Session
	s.Start("2024-03-04", 0)
	s.HoverEntry("2024-03-06", 1, drag.Above)

	date, slot, ok := s.Indicator()
	require.True(t, ok)
	assert.Equal(t, "2024-03-06", date)
	assert.Equal(t, -1, slot)
}

func TestIndicatorIsSingular(t *testing.T) {
	var s drag.Session
	s.Start("2024-03-04", 0)

	s.HoverEntry("2024-03-04", 2, drag.Above)
	s.HoverEntry("2024-03-04", 3, drag.Below)
	s.HoverEnd(5)

	date, slot, ok := s.Indicator()
	require.True(t, ok)
	assert.Equal(t, "2024-03-04", date)
	assert.Equal(t, 5, slot, "each hover replaces the previous indicator")
}

func TestCancelIsIdempotent(t *testing.T) {
	var s drag.Session
	s.Cancel() // safe with no gesture

	s.Start("2024-03-04", 0)
	s.HoverDay("2024-03-06")
	s.Cancel()
	s.Cancel()

	assert.False(t, s.Active())
	_, _, ok := s.Indicator()
	assert.False(t, ok)

	_, resolved := s.Resolve()
	assert.False(t, resolved, "resolving after cancel yields nothing")
}
