package handler

import (
	"errors"
	"strconv"

	"github.com/iliyamo/event-ticket-reservation/internal/service"
)

// AdminHandler serves the administrator menu.  It only prompts and
// prints; every rule lives in the service.
type AdminHandler struct {
	Svc *service.ReservationService // Svc owns events, tickets and credentials
}

// NewAdminHandler panics if svc is nil.
func NewAdminHandler(svc *service.ReservationService) *AdminHandler {
	if svc == nil {
		panic("nil service passed to NewAdminHandler")
	}
	return &AdminHandler{Svc: svc}
}

// Login asks for the administrator credentials.  A wrong pair is reported
// and leaves the session a guest.
func (h *AdminHandler) Login(s *Session) error {
	username, err := s.Prompt("Admin username: ")
	if err != nil {
		return err
	}
	password, err := s.Prompt("Admin password: ")
	if err != nil {
		return err
	}
	// a wrong pair is an ordinary outcome, not an error for the menu
	if err := h.Svc.AdminLogin(username, password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			s.Println(failure("Incorrect username or password."))
			return nil
		}
		return err
	}
	s.Login(RoleAdmin, "")
	s.Println(success("Admin login successful."))
	return nil
}

// CreateEvent prompts for title, capacity and date.
func (h *AdminHandler) CreateEvent(s *Session) error {
	title, err := s.Prompt("Event title: ")
	if err != nil {
		return err
	}
	raw, err := s.Prompt("Capacity: ")
	if err != nil {
		return err
	}
	// the sign is not checked, matching the service
	capacity, convErr := strconv.Atoi(raw)
	if convErr != nil {
		s.Println(failure("Capacity must be a whole number."))
		return nil
	}
	date, err := s.Prompt("Event date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	ev, err := h.Svc.CreateEvent(title, capacity, date)
	if err != nil {
		return reportFailure(s, err)
	}
	s.Println(success("Event '" + ev.Title + "' created successfully."))
	return nil
}

// ListEvents prints every event with its remaining capacity.
func (h *AdminHandler) ListEvents(s *Session) error {
	return listEvents(s, h.Svc)
}

// SalesReport prints confirmed sales per event.
func (h *AdminHandler) SalesReport(s *Session) error {
	lines, err := h.Svc.GenerateSalesReport()
	if err != nil {
		return reportFailure(s, err)
	}
	s.Println(Heading("Ticket Report:"))
	if len(lines) == 0 { // header only makes no sense without events
		s.Println("No events available.")
		return nil
	}
	s.Printf("%s", renderReport(lines))
	return nil
}

// Logout returns to the main menu.
func (h *AdminHandler) Logout(s *Session) error {
	s.Logout()
	s.Println("Logged out from admin account.")
	return ErrBack
}

func listEvents(s *Session, svc *service.ReservationService) error {
	events := svc.ListEvents()
	s.Println(Heading("Available Events:"))
	if len(events) == 0 {
		s.Println("No events available.")
		return nil
	}
	for _, ev := range events {
		s.Println(eventLine(0, ev))
	}
	return nil
}

// reportFailure prints the message for a service error.  Domain outcomes
// are handled here; anything else is returned so the caller can log it.
func reportFailure(s *Session, err error) error {
	// storage faults and unknown errors go back up to the logger middleware
	switch service.KindOf(err) {
	case service.KindIOFailure:
		s.Println(failure("Storage error, the change was not saved."))
		return err
	case service.KindUnknown:
		s.Println(failure("Unexpected error."))
		return err
	}
	s.Println(failure(err.Error()))
	return nil
}
