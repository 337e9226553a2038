// Package middleware wraps menu actions with cross-cutting checks.
package middleware

import (
	"errors"

	"github.com/iliyamo/event-ticket-reservation/internal/handler"
)

// ErrForbidden is returned when the session role may not run an action.
var ErrForbidden = errors.New("forbidden")

// Middleware decorates an action.
type Middleware func(next handler.Action) handler.Action

// RequireRole only runs next when the session has one of roles.
func RequireRole(roles ...handler.Role) Middleware {
	allowed := make(map[handler.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next handler.Action) handler.Action {
		return func(s *handler.Session) error {
			if !allowed[s.Role] {
				s.Println("You do not have access to this option.")
				return ErrForbidden
			}
			return next(s)
		}
	}
}

// Chain applies mws so that the first one is outermost.
func Chain(a handler.Action, mws ...Middleware) handler.Action {
	for i := len(mws) - 1; i >= 0; i-- {
		a = mws[i](a)
	}
	return a
}
