package router

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/event-ticket-reservation/internal/handler"
	"github.com/iliyamo/event-ticket-reservation/internal/model"
	"github.com/iliyamo/event-ticket-reservation/internal/repository"
	"github.com/iliyamo/event-ticket-reservation/internal/service"
)

func newApp(t *testing.T, log *zap.Logger) (*App, *service.ReservationService, *repository.TicketRepo) {
	t.Helper()
	dir := t.TempDir()
	events := repository.NewEventRepo(filepath.Join(dir, "events.json"), nil)
	tickets := repository.NewTicketRepo(filepath.Join(dir, "tickets.json"), nil)
	journal := repository.NewJournal(filepath.Join(dir, "reservation.journal"), events, tickets)
	creds, err := service.NewCredentials("sina", "1234", bcrypt.MinCost)
	require.NoError(t, err)
	svc, err := service.NewReservationService(service.Config{Admin: creds}, events, tickets, journal)
	require.NoError(t, err)
	return New(handler.NewAdminHandler(svc), handler.NewCustomerHandler(svc), log), svc, tickets
}

func run(t *testing.T, app *App, lines ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	s := handler.NewSession(strings.NewReader(strings.Join(lines, "\n")+"\n"), out)
	require.NoError(t, app.Run(s))
	return out.String()
}

func TestApp_FullSession(t *testing.T) {
	app, svc, tickets := newApp(t, nil)

	out := run(t, app,
		"1", "sina", "1234", // admin login
		"1", "Concert", "2", "2025-01-01", // create event
		"4",                // logout
		"2", "A",           // user login
		"2", "1",           // reserve
		"4",                // confirm
		"2", "1",           // reserve again
		"6",                // switch user
		"2", "B", "2", "1", // B reserves the last seat
		"6",
		"2", "C", "2", "1", // sold out
		"7", // exit from user menu
	)

	assert.Contains(t, out, "Event 'Concert' created successfully.")
	assert.Contains(t, out, "Ticket reserved successfully.")
	assert.Contains(t, out, "Reservation confirmed.")
	assert.Contains(t, out, "You have already reserved a ticket for this event.")
	assert.Contains(t, out, "No more tickets available for this event.")
	assert.Contains(t, out, "Exiting user account.")

	stored, err := tickets.Load()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, model.TicketStatusConfirmed, stored[0].Status)
	assert.Equal(t, model.TicketStatusPending, stored[1].Status)
	assert.Equal(t, 0, svc.ListEvents()[0].RemainingCapacity)
}

func TestApp_InvalidChoicesAndLogin(t *testing.T) {
	app, _, _ := newApp(t, nil)
	out := run(t, app,
		"9",
		"1", "sina", "nope",
		"3",
	)
	assert.Contains(t, out, "Invalid option. Please try again.")
	assert.Contains(t, out, "Incorrect username or password.")
	assert.Contains(t, out, "Exiting the system. Goodbye!")
	assert.NotContains(t, out, "Admin Menu")
}

func TestApp_EOFEndsCleanly(t *testing.T) {
	app, _, _ := newApp(t, nil)
	out := &bytes.Buffer{}
	s := handler.NewSession(strings.NewReader("2\nA\n1\n"), out)
	require.NoError(t, app.Run(s))
	assert.Contains(t, out.String(), "You have no tickets.")
}

func TestApp_LogsActions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app, _, _ := newApp(t, zap.New(core))
	run(t, app, "2", "A", "5", "7")

	var actions []string
	for _, e := range logs.All() {
		actions = append(actions, e.ContextMap()["action"].(string))
	}
	assert.Equal(t, []string{"list_events", "exit", "user_login"}, actions)
}

func TestMenu_UseOnlyWrapsLaterEntries(t *testing.T) {
	m := NewMenu("Test", nil)
	m.Add("Open", "open", func(s *handler.Session) error { return handler.ErrBack })
	m.Use(func(next handler.Action) handler.Action {
		return func(s *handler.Session) error { return handler.ErrExit }
	})
	m.Add("Closed", "closed", func(s *handler.Session) error { return handler.ErrBack })

	s := handler.NewSession(strings.NewReader("1\n"), &bytes.Buffer{})
	require.NoError(t, m.Run(s))

	s = handler.NewSession(strings.NewReader("2\n"), &bytes.Buffer{})
	assert.ErrorIs(t, m.Run(s), handler.ErrExit)
}
