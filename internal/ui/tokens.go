package ui

import (
	"sync/atomic"

	"apidir/internal/domain"
)

// Slot is one lane of asynchronous fetches. Only the latest ticket issued for
// a slot may apply its result.
type Slot string

const (
	SlotDirectory  Slot = "directory"
	SlotDescriptor Slot = "descriptor"
	SlotDetail     Slot = "detail"
)

// Ticket identifies one issued fetch.
type Ticket struct {
	Slot     Slot
	Token    uint64
	Provider domain.ProviderID
}

// IsZero reports whether the ticket was never issued.
func (t Ticket) IsZero() bool {
	return t.Token == 0
}

var tokenCounter atomic.Uint64

// tokenSource tracks the latest ticket per slot. Callers hold their own lock.
type tokenSource struct {
	latest map[Slot]uint64
}

func newTokenSource() tokenSource {
	return tokenSource{latest: make(map[Slot]uint64)}
}

func (s *tokenSource) issue(slot Slot, provider domain.ProviderID) Ticket {
	token := tokenCounter.Add(1)
	s.latest[slot] = token
	return Ticket{Slot: slot, Token: token, Provider: provider}
}

func (s *tokenSource) invalidate(slots ...Slot) {
	for _, slot := range slots {
		delete(s.latest, slot)
	}
}

func (s *tokenSource) current(ticket Ticket) bool {
	if ticket.IsZero() {
		return false
	}
	latest, ok := s.latest[ticket.Slot]
	return ok && latest == ticket.Token
}
