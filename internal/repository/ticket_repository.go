package repository

import (
	"fmt"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

// TicketRepo reads and writes the full ticket collection of one file.
// There are no indexes; callers scan the slice.
type TicketRepo struct {
	path  string
	codec Codec
}

// NewTicketRepo returns a TicketRepo bound to path.  A nil codec means JSON.
func NewTicketRepo(path string, codec Codec) *TicketRepo {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &TicketRepo{path: path, codec: codec}
}

// Path returns the file backing the repository.
func (r *TicketRepo) Path() string { return r.path }

// Load returns every persisted ticket in storage order.  A ticket with an
// unknown status is treated as a corrupt store.
func (r *TicketRepo) Load() ([]model.Ticket, error) {
	var tickets []model.Ticket
	if err := readCollection(r.path, r.codec, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		return []model.Ticket{}, nil
	}
	for i, t := range tickets {
		if !t.Status.Valid() {
			return nil, ioErr("decode", r.path, fmt.Errorf("ticket %d: unknown status %q", i, t.Status))
		}
	}
	return tickets, nil
}

// Save overwrites the file with tickets.
func (r *TicketRepo) Save(tickets []model.Ticket) error {
	data, err := r.Encode(tickets)
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, data)
}

// Encode renders tickets in the repository's format without writing them.
func (r *TicketRepo) Encode(tickets []model.Ticket) ([]byte, error) {
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	data, err := r.codec.Marshal(tickets)
	if err != nil {
		return nil, ioErr("encode", r.path, err)
	}
	return data, nil
}
