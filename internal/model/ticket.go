package model

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusConfirmed TicketStatus = "confirmed"
	TicketStatusCanceled  TicketStatus = "canceled"
)

// Valid reports whether s is one of the known statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusConfirmed, TicketStatusCanceled:
		return true
	}
	return false
}

// IsActive reports whether a ticket in this status still holds a seat.
func (s TicketStatus) IsActive() bool {
	return s == TicketStatusPending || s == TicketStatusConfirmed
}

// CanTransition reports whether a ticket may move from s to next.
// Only pending tickets move; confirmed and canceled are terminal.
func (s TicketStatus) CanTransition(next TicketStatus) bool {
	if s != TicketStatusPending {
		return false
	}
	return next == TicketStatusConfirmed || next == TicketStatusCanceled
}

// Ticket records one person's reservation against one event.  The
// event is referenced by title only and Date is copied from the event
// when the ticket is issued; it is not re-synced afterwards.
type Ticket struct {
	NationalID string       `json:"national_id" yaml:"national_id"`
	EventTitle string       `json:"event_title" yaml:"event_title"`
	Date       string       `json:"date" yaml:"date"`
	Status     TicketStatus `json:"status" yaml:"status"`
}

// NewTicket issues a pending ticket for e.
func NewTicket(nationalID string, e Event) Ticket {
	return Ticket{
		NationalID: nationalID,
		EventTitle: e.Title,
		Date:       e.Date,
		Status:     TicketStatusPending,
	}
}
