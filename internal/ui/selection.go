package ui

import (
	"sync"

	"apidir/internal/domain"
)

// DrawerState is the state of the provider drawer.
type DrawerState string

const (
	StateClosed    DrawerState = "closed"
	StateCollapsed DrawerState = "open/collapsed"
	StateExpanded  DrawerState = "open/expanded"
)

// SelectionSnapshot is a copy of the selection state.
type SelectionSnapshot struct {
	DrawerOpen bool                   `json:"drawerOpen"`
	State      DrawerState            `json:"state"`
	Expanded   domain.ProviderID      `json:"expanded,omitempty"`
	Summary    domain.ProviderSummary `json:"summary"`
}

// TransitionFunc observes state changes. It is called without the lock held.
type TransitionFunc func(from, to SelectionSnapshot)

// Selection tracks the drawer flag, the expanded provider and its summary.
// The summary is only ever non-empty while a provider is expanded.
type Selection struct {
	mu sync.Mutex

	drawerOpen bool
	expanded   domain.ProviderID
	summary    domain.ProviderSummary
	tokens     tokenSource

	onTransition TransitionFunc
}

// NewSelection returns a closed selection.
func NewSelection(onTransition TransitionFunc) *Selection {
	return &Selection{
		tokens:       newTokenSource(),
		onTransition: onTransition,
	}
}

// ToggleDrawer opens a closed drawer or closes an open one. Closing drops the
// expanded provider and any pending fetch. It reports whether the drawer is
// now open, in which case the caller starts the directory fetch.
func (s *Selection) ToggleDrawer() bool {
	s.mu.Lock()
	before := s.snapshotLocked()
	if s.drawerOpen {
		s.closeLocked()
	} else {
		s.drawerOpen = true
	}
	after := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(before, after)
	return after.DrawerOpen
}

// SelectProvider expands id, or collapses it when it is already expanded.
// The returned ticket is valid only when ok is true; the caller fetches the
// descriptor and reports back through CompleteDescriptor.
func (s *Selection) SelectProvider(id domain.ProviderID) (ticket Ticket, ok bool) {
	s.mu.Lock()
	before := s.snapshotLocked()
	s.drawerOpen = true
	if s.expanded == id {
		s.expanded = ""
		s.summary = domain.ProviderSummary{}
		s.tokens.invalidate(SlotDescriptor)
	} else {
		s.expanded = id
		s.summary = domain.ProviderSummary{}
		ticket = s.tokens.issue(SlotDescriptor, id)
		ok = true
	}
	after := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(before, after)
	return ticket, ok
}

// CompleteDescriptor applies a descriptor fetch result. A failed fetch leaves
// the provider expanded with an empty summary. Results for superseded tickets
// or for a provider that is no longer expanded are dropped.
func (s *Selection) CompleteDescriptor(ticket Ticket, summary domain.ProviderSummary, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket.Slot != SlotDescriptor || !s.tokens.current(ticket) || s.expanded != ticket.Provider {
		return false
	}
	s.tokens.invalidate(SlotDescriptor)
	if err != nil {
		s.summary = domain.ProviderSummary{}
		return true
	}
	s.summary = summary
	return true
}

// BeginDirectory issues the ticket for a directory fetch.
func (s *Selection) BeginDirectory() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.issue(SlotDirectory, "")
}

// CompleteDirectory reports whether a directory result may be applied.
func (s *Selection) CompleteDirectory(ticket Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket.Slot != SlotDirectory || !s.tokens.current(ticket) || !s.drawerOpen {
		return false
	}
	s.tokens.invalidate(SlotDirectory)
	return true
}

// OutsideClick closes the drawer from any state. It reports whether anything
// changed.
func (s *Selection) OutsideClick() bool {
	s.mu.Lock()
	before := s.snapshotLocked()
	if !s.drawerOpen {
		s.mu.Unlock()
		return false
	}
	s.closeLocked()
	after := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(before, after)
	return true
}

// Reset returns to the initial closed state and drops every pending fetch.
func (s *Selection) Reset() {
	s.mu.Lock()
	before := s.snapshotLocked()
	s.closeLocked()
	s.tokens.invalidate(SlotDirectory, SlotDescriptor)
	after := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(before, after)
}

func (s *Selection) Snapshot() SelectionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Selection) closeLocked() {
	s.drawerOpen = false
	s.expanded = ""
	s.summary = domain.ProviderSummary{}
	s.tokens.invalidate(SlotDirectory, SlotDescriptor)
}

func (s *Selection) snapshotLocked() SelectionSnapshot {
	snapshot := SelectionSnapshot{
		DrawerOpen: s.drawerOpen,
		Expanded:   s.expanded,
		Summary:    s.summary,
	}
	switch {
	case !s.drawerOpen:
		snapshot.State = StateClosed
	case s.expanded != "":
		snapshot.State = StateExpanded
	default:
		snapshot.State = StateCollapsed
	}
	return snapshot
}

func (s *Selection) notify(before, after SelectionSnapshot) {
	if s.onTransition == nil || before == after {
		return
	}
	s.onTransition(before, after)
}
