// Package audit keeps an append-only booking log.  Every reservation,
// confirmation and cancellation is written as one human-readable line so
// the history survives even though the ticket store only keeps the
// latest status.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

// Kind names what happened to a ticket.
type Kind string

const (
	KindReserved  Kind = "reserved"
	KindConfirmed Kind = "confirmed"
	KindCanceled  Kind = "canceled"
)

// BookingEvent is one entry of the booking log.  It carries enough of
// the ticket to be read on its own without opening the stores.
type BookingEvent struct {
	ID         string             `json:"id"`
	Kind       Kind               `json:"kind"`
	NationalID string             `json:"national_id"`
	EventTitle string             `json:"event_title"`
	EventDate  string             `json:"event_date"`
	Status     model.TicketStatus `json:"status"`
	OccurredAt string             `json:"occurred_at"`
}

// NewBookingEvent describes t after kind happened at the given time.
func NewBookingEvent(kind Kind, t model.Ticket, at time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		NationalID: t.NationalID,
		EventTitle: t.EventTitle,
		EventDate:  t.Date,
		Status:     t.Status,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
