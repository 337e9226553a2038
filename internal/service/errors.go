package service

import (
	"errors"

	"github.com/iliyamo/event-ticket-reservation/internal/repository"
)

// Outcomes reported by ReservationService.  None of them is fatal; the
// caller is expected to show a message and carry on.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrAlreadyReserved    = errors.New("already reserved")
	ErrCapacityExhausted  = errors.New("capacity exhausted")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrorKind classifies an error returned by the service.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindAlreadyReserved
	KindCapacityExhausted
	KindInvalidCredentials
	KindIOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindAlreadyReserved:
		return "AlreadyReserved"
	case KindCapacityExhausted:
		return "CapacityExhausted"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindIOFailure:
		return "IOFailure"
	}
	return "Unknown"
}

// KindOf maps err onto the error taxonomy.  A nil error is KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrTicketNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyReserved):
		return KindAlreadyReserved
	case errors.Is(err, ErrCapacityExhausted):
		return KindCapacityExhausted
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case repository.IsIOError(err), errors.Is(err, repository.ErrCommitPending):
		return KindIOFailure
	}
	return KindUnknown
}
