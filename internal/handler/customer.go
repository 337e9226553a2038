package handler

import (
	"strconv"

	"github.com/iliyamo/event-ticket-reservation/internal/service"
)

// CustomerHandler serves the menu of a user identified by national id.
type CustomerHandler struct {
	Svc *service.ReservationService // Svc performs reservations for the session's national id
}

// NewCustomerHandler panics if svc is nil.
func NewCustomerHandler(svc *service.ReservationService) *CustomerHandler {
	if svc == nil {
		panic("nil service passed to NewCustomerHandler")
	}
	return &CustomerHandler{Svc: svc}
}

// Login asks for a national id.  No check is made beyond it being
// non-empty.
func (h *CustomerHandler) Login(s *Session) error {
	id, err := s.Prompt("Enter your National ID: ")
	if err != nil {
		return err
	}
	if id == "" {
		s.Println(failure("National ID is required."))
		return nil
	}
	s.Login(RoleCustomer, id)
	s.Printf("Welcome, %s.\n", id)
	return nil
}

// ViewMyTickets lists the tickets of the logged-in user.
func (h *CustomerHandler) ViewMyTickets(s *Session) error {
	tickets, err := h.Svc.ViewMyTickets(s.NationalID)
	if err != nil {
		return reportFailure(s, err)
	}
	if len(tickets) == 0 {
		s.Println("You have no tickets.")
		return nil
	}
	s.Println(Heading("Your Tickets:"))
	for _, t := range tickets {
		s.Println(ticketLine(t))
	}
	return nil
}

// Reserve shows a numbered event list and reserves the chosen one.
func (h *CustomerHandler) Reserve(s *Session) error {
	events := h.Svc.ListEvents()
	s.Println(Heading("Available Events:"))
	if len(events) == 0 {
		s.Println("No events available.")
		return nil
	}
	for i, ev := range events { // numbered from 1 for the prompt below
		s.Println(eventLine(i+1, ev))
	}

	raw, err := s.Prompt("Enter the number of the event you want to reserve: ")
	if err != nil {
		return err
	}
	// reject non-numeric and out-of-range choices before calling the service
	n, convErr := strconv.Atoi(raw)
	if convErr != nil {
		s.Println(failure("Please enter a valid number."))
		return nil
	}
	if n < 1 || n > len(events) {
		s.Println(failure("Invalid event number."))
		return nil
	}

	// The service resolves by title, so a duplicate title books the
	// first event carrying it.
	if _, err := h.Svc.ReserveTicket(events[n-1].Title, s.NationalID); err != nil {
		switch service.KindOf(err) { // one message per refusal reason
		case service.KindNotFound:
			s.Println(failure("Event not found."))
		case service.KindAlreadyReserved:
			s.Println(failure("You have already reserved a ticket for this event."))
		case service.KindCapacityExhausted:
			s.Println(failure("No more tickets available for this event."))
		default:
			return reportFailure(s, err)
		}
		return nil
	}
	s.Println(success("Ticket reserved successfully."))
	return nil
}

// Cancel cancels the user's first pending ticket.
func (h *CustomerHandler) Cancel(s *Session) error {
	_, err := h.Svc.CancelReservation(s.NationalID)
	return h.transitionOutcome(s, err, "Reservation canceled.", "Ticket not found or already canceled.")
}

// Confirm confirms the user's first pending ticket.
func (h *CustomerHandler) Confirm(s *Session) error {
	_, err := h.Svc.ConfirmReservation(s.NationalID)
	return h.transitionOutcome(s, err, "Reservation confirmed.", "Ticket not found or already confirmed.")
}

// transitionOutcome prints the result of a cancel or confirm.  Not found
// also covers a ticket that is no longer pending.
func (h *CustomerHandler) transitionOutcome(s *Session, err error, ok, notFound string) error {
	if err == nil {
		s.Println(success(ok))
		return nil
	}
	if service.KindOf(err) == service.KindNotFound {
		s.Println(failure(notFound))
		return nil
	}
	return reportFailure(s, err)
}

// ListEvents prints every event.
func (h *CustomerHandler) ListEvents(s *Session) error {
	return listEvents(s, h.Svc)
}

// SwitchUser returns to the main menu so another user can log in.
func (h *CustomerHandler) SwitchUser(s *Session) error {
	s.Logout()
	s.Println("Switching user.")
	return ErrBack
}

// Exit ends the program.
func (h *CustomerHandler) Exit(s *Session) error {
	s.Logout()
	s.Println("Exiting user account.")
	return ErrExit
}
