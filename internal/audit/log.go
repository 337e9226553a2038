package audit

import (
	"fmt"
	"os"
	"path/filepath"
)

// Recorder accepts booking events.
type Recorder interface {
	Record(ev BookingEvent) error
}

// BookingLog appends booking events to a text file, one line each.
type BookingLog struct {
	path string
}

// NewBookingLog returns a BookingLog writing to path.  The directory is
// created on first use.
func NewBookingLog(path string) *BookingLog {
	return &BookingLog{path: path}
}

// Path returns the log file location.
func (l *BookingLog) Path() string { return l.path }

// Record appends ev to the log file.
func (l *BookingLog) Record(ev BookingEvent) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open booking log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write booking log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single newline-terminated log line.
func FormatLine(ev BookingEvent) string {
	return fmt.Sprintf("[%s] Reservation %s | id=%s | national_id=%s | event=%q | date=%q | status=%s\n",
		ev.OccurredAt, ev.Kind, ev.ID, ev.NationalID, ev.EventTitle, ev.EventDate, ev.Status)
}

// Discard drops every event.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(BookingEvent) error { return nil }
