package ui

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apidir/internal/domain"
)

func TestSelectionStartsClosed(t *testing.T) {
	sel := NewSelection(nil)

	snap := sel.Snapshot()
	assert.Equal(t, StateClosed, snap.State)
	assert.False(t, snap.DrawerOpen)
	assert.Empty(t, snap.Expanded)
	assert.True(t, snap.Summary.IsEmpty())
}

func TestSelectionToggleDrawer(t *testing.T) {
	sel := NewSelection(nil)

	require.True(t, sel.ToggleDrawer())
	assert.Equal(t, StateCollapsed, sel.Snapshot().State)

	require.False(t, sel.ToggleDrawer())
	assert.Equal(t, StateClosed, sel.Snapshot().State)
}

func TestSelectionToggleFromExpandedClosesAndClears(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	ticket, ok := sel.SelectProvider("apis.guru")
	require.True(t, ok)
	require.True(t, sel.CompleteDescriptor(ticket, domain.ProviderSummary{Title: "APIs.guru"}, nil))

	require.False(t, sel.ToggleDrawer())

	want := SelectionSnapshot{State: StateClosed}
	if diff := cmp.Diff(want, sel.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionSelectProviderExpandsAndCollapses(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()

	ticket, ok := sel.SelectProvider("a")
	require.True(t, ok)
	assert.Equal(t, SlotDescriptor, ticket.Slot)
	assert.Equal(t, domain.ProviderID("a"), ticket.Provider)
	assert.Equal(t, StateExpanded, sel.Snapshot().State)
	assert.Equal(t, domain.ProviderID("a"), sel.Snapshot().Expanded)
	assert.True(t, sel.Snapshot().Summary.IsEmpty())

	require.True(t, sel.CompleteDescriptor(ticket, domain.ProviderSummary{Title: "A"}, nil))
	assert.Equal(t, "A", sel.Snapshot().Summary.Title)

	_, ok = sel.SelectProvider("a")
	require.False(t, ok)
	snap := sel.Snapshot()
	assert.Equal(t, StateCollapsed, snap.State)
	assert.Empty(t, snap.Expanded)
	assert.True(t, snap.Summary.IsEmpty())
}

func TestSelectionSelectProviderSwitchClearsSummary(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	first, _ := sel.SelectProvider("a")
	require.True(t, sel.CompleteDescriptor(first, domain.ProviderSummary{Title: "A"}, nil))

	second, ok := sel.SelectProvider("b")
	require.True(t, ok)
	snap := sel.Snapshot()
	assert.Equal(t, domain.ProviderID("b"), snap.Expanded)
	assert.True(t, snap.Summary.IsEmpty())
	assert.NotEqual(t, first.Token, second.Token)
}

func TestSelectionSelectProviderOpensClosedDrawer(t *testing.T) {
	sel := NewSelection(nil)

	_, ok := sel.SelectProvider("a")
	require.True(t, ok)

	snap := sel.Snapshot()
	assert.True(t, snap.DrawerOpen)
	assert.Equal(t, StateExpanded, snap.State)
}

func TestSelectionDropsSupersededDescriptor(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	first, _ := sel.SelectProvider("a")
	second, _ := sel.SelectProvider("b")

	assert.False(t, sel.CompleteDescriptor(first, domain.ProviderSummary{Title: "A"}, nil))
	assert.True(t, sel.Snapshot().Summary.IsEmpty())

	assert.True(t, sel.CompleteDescriptor(second, domain.ProviderSummary{Title: "B"}, nil))
	assert.Equal(t, "B", sel.Snapshot().Summary.Title)

	assert.False(t, sel.CompleteDescriptor(second, domain.ProviderSummary{Title: "B again"}, nil))
	assert.Equal(t, "B", sel.Snapshot().Summary.Title)
}

func TestSelectionDropsDescriptorAfterCollapse(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	ticket, _ := sel.SelectProvider("a")
	sel.SelectProvider("a")

	assert.False(t, sel.CompleteDescriptor(ticket, domain.ProviderSummary{Title: "A"}, nil))
	assert.Equal(t, StateCollapsed, sel.Snapshot().State)
	assert.True(t, sel.Snapshot().Summary.IsEmpty())
}

func TestSelectionDescriptorFailureKeepsExpanded(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	ticket, _ := sel.SelectProvider("a")

	require.True(t, sel.CompleteDescriptor(ticket, domain.ProviderSummary{Title: "ignored"}, errors.New("boom")))

	snap := sel.Snapshot()
	assert.Equal(t, StateExpanded, snap.State)
	assert.Equal(t, domain.ProviderID("a"), snap.Expanded)
	assert.True(t, snap.Summary.IsEmpty())
}

func TestSelectionOutsideClick(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*Selection)
		changed bool
	}{
		{name: "closed", setup: func(*Selection) {}, changed: false},
		{name: "collapsed", setup: func(s *Selection) { s.ToggleDrawer() }, changed: true},
		{name: "expanded", setup: func(s *Selection) { s.ToggleDrawer(); s.SelectProvider("a") }, changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(nil)
			tt.setup(sel)

			assert.Equal(t, tt.changed, sel.OutsideClick())
			want := SelectionSnapshot{State: StateClosed}
			if diff := cmp.Diff(want, sel.Snapshot()); diff != "" {
				t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectionDirectoryTickets(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()

	first := sel.BeginDirectory()
	second := sel.BeginDirectory()
	assert.False(t, sel.CompleteDirectory(first))
	assert.True(t, sel.CompleteDirectory(second))
	assert.False(t, sel.CompleteDirectory(second))

	third := sel.BeginDirectory()
	sel.ToggleDrawer()
	assert.False(t, sel.CompleteDirectory(third))
}

func TestSelectionDirectoryTicketDroppedAfterReopen(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	stale := sel.BeginDirectory()
	sel.ToggleDrawer()
	sel.ToggleDrawer()

	assert.False(t, sel.CompleteDirectory(stale))
}

func TestSelectionRejectsWrongSlot(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	dir := sel.BeginDirectory()
	desc, _ := sel.SelectProvider("a")

	assert.False(t, sel.CompleteDescriptor(dir, domain.ProviderSummary{}, nil))
	assert.False(t, sel.CompleteDirectory(desc))
	assert.False(t, sel.CompleteDirectory(Ticket{}))
}

func TestSelectionTransitions(t *testing.T) {
	var got []string
	sel := NewSelection(func(from, to SelectionSnapshot) {
		got = append(got, string(from.State)+" -> "+string(to.State))
	})

	sel.ToggleDrawer()
	sel.SelectProvider("a")
	sel.SelectProvider("b")
	sel.SelectProvider("b")
	sel.OutsideClick()
	sel.OutsideClick()
	sel.Reset()

	want := []string{
		"closed -> open/collapsed",
		"open/collapsed -> open/expanded",
		"open/expanded -> open/expanded",
		"open/expanded -> open/collapsed",
		"open/collapsed -> closed",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionSummaryOnlyWhileExpanded(t *testing.T) {
	sel := NewSelection(nil)
	sel.ToggleDrawer()
	ticket, _ := sel.SelectProvider("a")
	sel.CompleteDescriptor(ticket, domain.ProviderSummary{Title: "A"}, nil)

	ops := []func(){
		func() { sel.SelectProvider("a") },
		func() { sel.SelectProvider("b") },
		func() { sel.OutsideClick() },
		func() { sel.ToggleDrawer() },
		func() { sel.ToggleDrawer() },
		func() { sel.Reset() },
	}
	for _, op := range ops {
		op()
		snap := sel.Snapshot()
		if snap.State != StateExpanded {
			assert.True(t, snap.Summary.IsEmpty(), "summary must be empty in %s", snap.State)
		}
		if !snap.DrawerOpen {
			assert.Empty(t, snap.Expanded)
		}
	}
}
