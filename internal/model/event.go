package model

// Event represents a ticketed occasion with a finite number of seats.
// Events are identified by their title; the stores do not enforce
// uniqueness, so lookups always take the first match in storage order.
//
// Fields:
//
//	Title               – identifier shown to users and copied onto tickets.
//	TotalCapacity       – number of tickets the event was created with.
//	RemainingCapacity   – tickets still available (0 ≤ remaining ≤ total).
//	Date                – free-form date string, never parsed.
//	ReservedNationalIDs – national ids holding a ticket for this event.
type Event struct {
	Title               string   `json:"title" yaml:"title"`
	TotalCapacity       int      `json:"total_capacity" yaml:"total_capacity"`
	RemainingCapacity   int      `json:"remaining_capacity" yaml:"remaining_capacity"`
	Date                string   `json:"date" yaml:"date"`
	ReservedNationalIDs []string `json:"reserved_national_ids" yaml:"reserved_national_ids"`
}

// NewEvent returns an event with all of its capacity available.
func NewEvent(title string, capacity int, date string) Event {
	return Event{
		Title:               title,
		TotalCapacity:       capacity,
		RemainingCapacity:   capacity,
		Date:                date,
		ReservedNationalIDs: []string{},
	}
}

// HasReservation reports whether nationalID is already in the reserved set.
func (e Event) HasReservation(nationalID string) bool {
	for _, id := range e.ReservedNationalIDs {
		if id == nationalID {
			return true
		}
	}
	return false
}

// SoldOut reports whether no capacity is left.
func (e Event) SoldOut() bool {
	return e.RemainingCapacity <= 0
}

// Clone returns a copy that does not share the reserved set.
func (e Event) Clone() Event {
	out := e
	out.ReservedNationalIDs = append([]string{}, e.ReservedNationalIDs...)
	return out
}
