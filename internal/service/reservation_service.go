// Package service holds the reservation rules.  ReservationService is the
// only component that touches both stores; everything that prints or
// prompts lives in the handler package.
package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/event-ticket-reservation/internal/audit"
	"github.com/iliyamo/event-ticket-reservation/internal/model"
	"github.com/iliyamo/event-ticket-reservation/internal/repository"
	"github.com/iliyamo/event-ticket-reservation/internal/utils"
)

// EventStore persists the full event collection.
type EventStore interface {
	Load() ([]model.Event, error)
	Save(events []model.Event) error
}

// TicketStore persists the full ticket collection.
type TicketStore interface {
	Load() ([]model.Ticket, error)
	Save(tickets []model.Ticket) error
}

// Committer writes both collections as a single unit and returns an id
// for the commit.  An error wrapping repository.ErrCommitPending means
// the commit was recorded but not fully applied.
type Committer interface {
	Commit(events []model.Event, tickets []model.Ticket) (string, error)
}

// Recoverer completes a commit left pending.  A Committer that also
// implements Recoverer lets the service heal itself without a restart.
type Recoverer interface {
	Recover() (bool, error)
}

// Credentials identify the single administrator.  The password is kept
// as a bcrypt hash of the configured value.
type Credentials struct {
	Username     string
	PasswordHash string
}

// NewCredentials hashes password with the given bcrypt cost.
func NewCredentials(username, password string, cost int) (Credentials, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash admin password: %w", err)
	}
	return Credentials{Username: username, PasswordHash: hash}, nil
}

// Config is the fixed configuration of a ReservationService.
type Config struct {
	Admin Credentials
}

// Option customises a ReservationService.
type Option func(*ReservationService)

// WithLogger sets the structured logger.  The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *ReservationService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRecorder sends booking events to r.
func WithRecorder(r audit.Recorder) Option {
	return func(s *ReservationService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock overrides the time source used for booking events.
func WithClock(now func() time.Time) Option {
	return func(s *ReservationService) {
		if now != nil {
			s.now = now
		}
	}
}

// SalesLine is one row of the sales report.
type SalesLine struct {
	Title     string
	Date      string
	Sold      int
	Remaining int
}

// ReservationService coordinates the event and ticket stores.  Events are
// cached when the service is built and only the service writes them, so
// the cache is authoritative for this process.  Tickets are loaded fresh
// for every operation.  A ReservationService is not safe for concurrent
// use.
type ReservationService struct {
	events   EventStore       // events is written alone by CreateEvent
	tickets  TicketStore      // tickets is read on every operation and written by transitions
	commit   Committer        // commit writes both stores for a reservation
	admin    Credentials      // admin is the single administrator
	recorder audit.Recorder   // recorder receives booking events
	log      *zap.Logger      // log gets structured operation logs
	now      func() time.Time // now stamps booking events

	cache   []model.Event
	byTitle map[string]int // title -> index of first event with that title

	// pending is set while a recorded commit has not reached the files;
	// every store access settles it first.
	pending bool
}

// NewReservationService builds the service and loads the event cache.
func NewReservationService(cfg Config, events EventStore, tickets TicketStore, commit Committer, opts ...Option) (*ReservationService, error) {
	if events == nil || tickets == nil || commit == nil {
		panic("nil store passed to NewReservationService")
	}
	s := &ReservationService{
		events:   events,
		tickets:  tickets,
		commit:   commit,
		admin:    cfg.Admin,
		recorder: audit.Discard,
		log:      zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	cached, err := events.Load()
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	s.setCache(cached)
	s.log.Debug("event cache loaded", zap.Int("events", len(cached)))
	return s, nil
}

// VerifyAdminLogin reports whether username and password match the
// configured administrator exactly.
func (s *ReservationService) VerifyAdminLogin(username, password string) bool {
	if username != s.admin.Username {
		return false
	}
	return utils.VerifyPassword(s.admin.PasswordHash, password)
}

// AdminLogin is VerifyAdminLogin reported as an error.
func (s *ReservationService) AdminLogin(username, password string) error {
	if !s.VerifyAdminLogin(username, password) {
		s.log.Warn("admin login rejected", zap.String("username", username))
		return ErrInvalidCredentials
	}
	return nil
}

// CreateEvent appends a new event and persists the event collection.
// Capacity sign and duplicate titles are not checked.
func (s *ReservationService) CreateEvent(title string, capacity int, date string) (model.Event, error) {
	if err := s.settle(); err != nil {
		return model.Event{}, fmt.Errorf("create event %q: %w", title, err)
	}
	ev := model.NewEvent(title, capacity, date)
	next := append(cloneEvents(s.cache), ev)
	if err := s.events.Save(next); err != nil {
		return model.Event{}, fmt.Errorf("create event %q: %w", title, err)
	}
	s.setCache(next)
	s.log.Info("event created",
		zap.String("title", title),
		zap.Int("capacity", capacity),
		zap.String("date", date))
	return ev.Clone(), nil
}

// ListEvents returns a copy of the cached events in storage order.
func (s *ReservationService) ListEvents() []model.Event {
	return cloneEvents(s.cache)
}

// ReserveTicket issues a pending ticket for nationalID on the first event
// titled eventTitle.  The checks run in order: unknown event, national id
// already in the event's reserved set, no capacity left.  The updated
// event and the new ticket are committed together.  If the commit fails
// before its commit point neither store nor the cache changes; once the
// commit is recorded the reservation stands even if publishing it has to
// wait for recovery.
func (s *ReservationService) ReserveTicket(eventTitle, nationalID string) (model.Ticket, error) {
	// domain checks run against the cache, first match wins
	idx, ok := s.byTitle[eventTitle]
	if !ok {
		return model.Ticket{}, ErrEventNotFound
	}
	ev := s.cache[idx]
	if ev.HasReservation(nationalID) {
		return model.Ticket{}, ErrAlreadyReserved
	}
	if ev.SoldOut() {
		return model.Ticket{}, ErrCapacityExhausted
	}

	if err := s.settle(); err != nil {
		return model.Ticket{}, fmt.Errorf("reserve ticket: %w", err)
	}
	tickets, err := s.tickets.Load()
	if err != nil {
		return model.Ticket{}, fmt.Errorf("reserve ticket: %w", err)
	}

	// build the next state on copies so a failed commit leaves the cache alone
	ticket := model.NewTicket(nationalID, ev)
	updated := ev.Clone()
	updated.ReservedNationalIDs = append(updated.ReservedNationalIDs, nationalID)
	updated.RemainingCapacity--

	nextEvents := cloneEvents(s.cache)
	nextEvents[idx] = updated
	txID, err := s.commit.Commit(nextEvents, append(tickets, ticket))
	switch {
	case errors.Is(err, repository.ErrCommitPending):
		// recorded but not published; later store access waits for it
		s.pending = true
		s.log.Warn("reservation recorded, apply pending",
			zap.String("tx_id", txID), zap.Error(err))
	case err != nil:
		return model.Ticket{}, fmt.Errorf("reserve ticket: %w", err)
	}
	s.cache[idx] = updated

	s.log.Info("ticket reserved",
		zap.String("event", eventTitle),
		zap.String("national_id", nationalID),
		zap.Int("remaining", updated.RemainingCapacity),
		zap.String("tx_id", txID))
	s.record(audit.KindReserved, ticket)

	// one immediate retry; if it fails the next store access tries again
	_ = s.settle()
	return ticket, nil
}

// CancelReservation cancels the first pending ticket held by nationalID,
// in storage order.  The event keeps its decremented capacity and the
// national id stays in its reserved set.
func (s *ReservationService) CancelReservation(nationalID string) (model.Ticket, error) {
	t, err := s.transition(nationalID, model.TicketStatusCanceled)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("cancel reservation: %w", err)
	}
	s.record(audit.KindCanceled, t)
	return t, nil
}

// ConfirmReservation confirms the first pending ticket held by
// nationalID, in storage order.
func (s *ReservationService) ConfirmReservation(nationalID string) (model.Ticket, error) {
	t, err := s.transition(nationalID, model.TicketStatusConfirmed)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("confirm reservation: %w", err)
	}
	s.record(audit.KindConfirmed, t)
	return t, nil
}

// ViewMyTickets returns every ticket held by nationalID in storage order.
func (s *ReservationService) ViewMyTickets(nationalID string) ([]model.Ticket, error) {
	if err := s.settle(); err != nil {
		return nil, fmt.Errorf("view tickets: %w", err)
	}
	tickets, err := s.tickets.Load()
	if err != nil {
		return nil, fmt.Errorf("view tickets: %w", err)
	}
	idxs := indexByNationalID(tickets)[nationalID]
	out := make([]model.Ticket, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, tickets[i])
	}
	return out, nil
}

// GenerateSalesReport counts confirmed tickets per cached event.  Sold
// comes from the ticket store as it is now; Remaining is the cached
// capacity.
func (s *ReservationService) GenerateSalesReport() ([]SalesLine, error) {
	if err := s.settle(); err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	tickets, err := s.tickets.Load()
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	sold := make(map[string]int)
	for _, t := range tickets {
		if t.Status == model.TicketStatusConfirmed {
			sold[t.EventTitle]++
		}
	}
	lines := make([]SalesLine, 0, len(s.cache))
	for _, ev := range s.cache {
		lines = append(lines, SalesLine{
			Title:     ev.Title,
			Date:      ev.Date,
			Sold:      sold[ev.Title],
			Remaining: ev.RemainingCapacity,
		})
	}
	return lines, nil
}

func (s *ReservationService) transition(nationalID string, to model.TicketStatus) (model.Ticket, error) {
	if err := s.settle(); err != nil {
		return model.Ticket{}, err
	}
	tickets, err := s.tickets.Load()
	if err != nil {
		return model.Ticket{}, err
	}
	idx := -1
	for _, i := range indexByNationalID(tickets)[nationalID] {
		if tickets[i].Status.CanTransition(to) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Ticket{}, ErrTicketNotFound
	}
	// only the ticket file changes; the event keeps its capacity
	tickets[idx].Status = to
	if err := s.tickets.Save(tickets); err != nil {
		return model.Ticket{}, err
	}
	s.log.Info("ticket status changed",
		zap.String("national_id", nationalID),
		zap.String("event", tickets[idx].EventTitle),
		zap.String("status", string(to)))
	return tickets[idx], nil
}

// settle completes a pending commit.  Until it succeeds the files lag
// behind the cache, so callers must not read or write them.
func (s *ReservationService) settle() error {
	if !s.pending {
		return nil
	}
	r, ok := s.commit.(Recoverer)
	if !ok {
		return fmt.Errorf("stores out of sync: %w", repository.ErrCommitPending)
	}
	if _, err := r.Recover(); err != nil {
		s.log.Warn("pending commit still not applied", zap.Error(err))
		return fmt.Errorf("complete pending commit: %w", err)
	}
	s.pending = false
	s.log.Info("pending commit applied")
	return nil
}

func (s *ReservationService) record(kind audit.Kind, t model.Ticket) {
	if err := s.recorder.Record(audit.NewBookingEvent(kind, t, s.now())); err != nil {
		s.log.Warn("booking log write failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (s *ReservationService) setCache(events []model.Event) {
	s.cache = events
	s.byTitle = make(map[string]int, len(events))
	for i, ev := range events {
		if _, seen := s.byTitle[ev.Title]; !seen {
			s.byTitle[ev.Title] = i
		}
	}
}

func cloneEvents(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	for i, ev := range events {
		out[i] = ev.Clone()
	}
	return out
}

// indexByNationalID maps each national id to its ticket positions in
// storage order.
func indexByNationalID(tickets []model.Ticket) map[string][]int {
	idx := make(map[string][]int)
	for i, t := range tickets {
		idx[t.NationalID] = append(idx[t.NationalID], i)
	}
	return idx
}
