package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

func TestNewBookingEvent(t *testing.T) {
	tk := model.Ticket{NationalID: "111", EventTitle: "Concert", Date: "2025-01-01", Status: model.TicketStatusConfirmed}
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	ev := NewBookingEvent(KindConfirmed, tk, at)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, KindConfirmed, ev.Kind)
	assert.Equal(t, "111", ev.NationalID)
	assert.Equal(t, "Concert", ev.EventTitle)
	assert.Equal(t, "2025-01-01", ev.EventDate)
	assert.Equal(t, "2025-01-01T12:00:00Z", ev.OccurredAt)
}

func TestBookingLog_AppendsOneLinePerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	log := NewBookingLog(path)
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tk := model.NewTicket("111", model.NewEvent("Concert", 2, "2025-01-01"))

	require.NoError(t, log.Record(NewBookingEvent(KindReserved, tk, at)))
	tk.Status = model.TicketStatusCanceled
	require.NoError(t, log.Record(NewBookingEvent(KindCanceled, tk, at)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Reservation reserved")
	assert.Contains(t, lines[0], `event="Concert"`)
	assert.Contains(t, lines[0], "status=pending")
	assert.Contains(t, lines[1], "Reservation canceled")
	assert.Contains(t, lines[1], "status=canceled")
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Record(BookingEvent{}))
}
