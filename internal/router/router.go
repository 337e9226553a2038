// Package router maps menu choices to handler actions.  Menus play the
// role of route groups: middleware registered on a menu wraps every
// entry added after it.
package router

import (
	"errors"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/iliyamo/event-ticket-reservation/internal/handler"
	"github.com/iliyamo/event-ticket-reservation/internal/middleware"
)

type entry struct {
	key    string
	label  string
	action handler.Action
}

// Menu is a titled list of numbered choices.
type Menu struct {
	Title   string
	entries []entry
	mws     []middleware.Middleware
	log     *zap.Logger
}

// NewMenu returns an empty menu.  Every entry is logged through log.
func NewMenu(title string, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	return &Menu{Title: title, log: log}
}

// Use appends middleware for entries added afterwards.
func (m *Menu) Use(mws ...middleware.Middleware) {
	m.mws = append(m.mws, mws...)
}

// Add registers action under the next number.  name identifies the action
// in logs.
func (m *Menu) Add(label, name string, action handler.Action) {
	mws := append([]middleware.Middleware{middleware.Logger(m.log, name)}, m.mws...)
	m.entries = append(m.entries, entry{
		key:    strconv.Itoa(len(m.entries) + 1),
		label:  label,
		action: middleware.Chain(action, mws...),
	})
}

// Run shows the menu until an action returns handler.ErrBack (Run returns
// nil) or handler.ErrExit or io.EOF (returned as is).  Other action errors
// have already been reported and logged; the menu carries on.
func (m *Menu) Run(s *handler.Session) error {
	for {
		s.Println()
		s.Println(handler.Heading(m.Title))
		for _, e := range m.entries {
			s.Printf("%s. %s\n", e.key, e.label)
		}
		choice, err := s.Prompt("Choose an option: ")
		if err != nil {
			return err
		}
		e, ok := m.lookup(choice)
		if !ok {
			s.Println("Invalid option. Please try again.")
			continue
		}
		err = e.action(s)
		switch {
		case err == nil:
		case errors.Is(err, handler.ErrBack):
			return nil
		case errors.Is(err, handler.ErrExit), errors.Is(err, io.EOF):
			return err
		}
	}
}

func (m *Menu) lookup(key string) (entry, bool) {
	for _, e := range m.entries {
		if e.key == key {
			return e, true
		}
	}
	return entry{}, false
}
