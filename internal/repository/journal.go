package repository

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

const stagedSuffix = ".staged"

// Journal commits the event and ticket collections together.  Both
// documents are first written next to their targets as staged files, then
// a journal record naming the pending renames is written, and only then
// are the staged files renamed over the live ones.  If the process dies
// before the journal exists nothing changed; if it dies after, Recover
// finishes the renames on the next start.
type Journal struct {
	path    string           // path of the journal record
	events  *EventRepo       // events supplies the events target and codec
	tickets *TicketRepo      // tickets supplies the tickets target and codec
	now     func() time.Time // now stamps journal records

	// afterJournal runs once the journal record is durable and before any
	// rename.  Tests use it to simulate a crash at that point.
	afterJournal func() error
}

// journalRecord is the on-disk commit point.
type journalRecord struct {
	TxID      string          `json:"tx_id"`      // TxID correlates the commit with log lines
	CreatedAt time.Time       `json:"created_at"` // CreatedAt is when the commit was recorded
	Renames   []journalRename `json:"renames"`    // Renames are applied in order
}

type journalRename struct {
	Staged string `json:"staged"`
	Target string `json:"target"`
}

// NewJournal returns a Journal that records pending commits at path.
func NewJournal(path string, events *EventRepo, tickets *TicketRepo) *Journal {
	return &Journal{
		path:    path,
		events:  events,
		tickets: tickets,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Path returns the journal file location.
func (j *Journal) Path() string { return j.path }

// Commit persists events and tickets as one unit and returns the
// transaction id recorded in the journal.  An error wrapping
// ErrCommitPending means the journal record is durable but the renames
// did not all happen: the commit stands and Recover finishes it.  Any
// other error means nothing changed.
func (j *Journal) Commit(events []model.Event, tickets []model.Ticket) (string, error) {
	// finish an earlier commit first so its record is not overwritten
	if pending, err := fileExists(j.path); err != nil {
		return "", ioErr("stat", j.path, err)
	} else if pending {
		if _, err := j.Recover(); err != nil {
			return "", err
		}
	}

	eventData, err := j.events.Encode(events)
	if err != nil {
		return "", err
	}
	ticketData, err := j.tickets.Encode(tickets)
	if err != nil {
		return "", err
	}

	rec := journalRecord{
		TxID:      uuid.NewString(),
		CreatedAt: j.now(),
		Renames: []journalRename{
			{Staged: j.events.Path() + stagedSuffix, Target: j.events.Path()},
			{Staged: j.tickets.Path() + stagedSuffix, Target: j.tickets.Path()},
		},
	}

	// stage both documents next to their targets
	if err := writeFileAtomic(rec.Renames[0].Staged, eventData); err != nil {
		j.discardStaged()
		return "", err
	}
	if err := writeFileAtomic(rec.Renames[1].Staged, ticketData); err != nil {
		j.discardStaged()
		return "", err
	}

	// the journal record is the commit point
	recData, err := json.Marshal(rec)
	if err != nil {
		j.discardStaged()
		return "", ioErr("encode", j.path, err)
	}
	if err := writeFileAtomic(j.path, recData); err != nil {
		j.discardStaged()
		return "", err
	}

	if j.afterJournal != nil {
		if err := j.afterJournal(); err != nil {
			return rec.TxID, pendingErr(ioErr("commit", j.path, err))
		}
	}

	// publish the staged files; a failure here is rolled forward later
	if err := j.apply(rec); err != nil {
		return rec.TxID, pendingErr(err)
	}
	return rec.TxID, nil
}

// Recover completes a commit interrupted after its journal was written
// and removes staged files left by a commit that never reached that point,
// along with temp files of interrupted writes.
// It reports whether a pending commit was rolled forward.
func (j *Journal) Recover() (bool, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			j.discardStaged()
			return false, nil
		}
		return false, ioErr("read", j.path, err)
	}

	var rec journalRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return false, ioErr("decode", j.path, err)
	}
	if err := j.apply(rec); err != nil {
		return false, err
	}
	j.removeTemps()
	return true, nil
}

func (j *Journal) apply(rec journalRecord) error {
	for _, rn := range rec.Renames {
		ok, err := fileExists(rn.Staged)
		if err != nil {
			return ioErr("stat", rn.Staged, err)
		}
		if !ok {
			// already renamed by an earlier attempt
			continue
		}
		if err := os.Rename(rn.Staged, rn.Target); err != nil {
			return ioErr("commit", rn.Target, err)
		}
	}
	if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioErr("remove", j.path, err)
	}
	return nil
}

func (j *Journal) discardStaged() {
	_ = os.Remove(j.events.Path() + stagedSuffix)
	_ = os.Remove(j.tickets.Path() + stagedSuffix)
	j.removeTemps()
}

// removeTemps clears temp files of interrupted writes to any file the
// journal manages.
func (j *Journal) removeTemps() {
	for _, p := range []string{
		j.events.Path(), j.events.Path() + stagedSuffix,
		j.tickets.Path(), j.tickets.Path() + stagedSuffix,
		j.path,
	} {
		removeTempFiles(p)
	}
}
