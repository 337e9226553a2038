package handler

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
	"github.com/iliyamo/event-ticket-reservation/internal/service"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Heading renders a menu or section title.
func Heading(title string) string {
	return headingStyle.Render(title)
}

func failure(msg string) string { return errorStyle.Render(msg) }

func success(msg string) string { return okStyle.Render(msg) }

// eventLine renders one event, numbered from 1 when n > 0.
func eventLine(n int, ev model.Event) string {
	line := fmt.Sprintf("%s | Date: %s | Remaining: %d/%d", ev.Title, ev.Date, ev.RemainingCapacity, ev.TotalCapacity)
	if n > 0 {
		return fmt.Sprintf("%d. %s", n, line)
	}
	return "- " + line
}

func ticketLine(t model.Ticket) string {
	return fmt.Sprintf("- Event: %s | Date: %s | Status: %s", t.EventTitle, t.Date, t.Status)
}

// renderReport lays the sales lines out as an aligned table.
func renderReport(lines []service.SalesLine) string {
	width := len("Event")
	for _, l := range lines {
		width = max(width, len(l.Title))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %-10s  %5s  %9s\n", width, "Event", "Date", "Sold", "Remaining")
	for _, l := range lines {
		fmt.Fprintf(&b, "%-*s  %-10s  %5d  %9d\n", width, l.Title, l.Date, l.Sold, l.Remaining)
	}
	return b.String()
}
