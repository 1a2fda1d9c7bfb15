package strand

import (
	"database/sql"
	"log/slog"

	"github.com/perjohansson/strand/internal/journal"
)

// Journal pairs an Observer that records operation lifecycle events
// with a HistoryReader for reading them back.
type Journal struct {
	// Observer records every queue callback into the backing store.
	// Pass it (possibly combined via NewCompositeObserver) to
	// SchedulerConfig or QueueConfig.
	Observer Observer

	// History reads back recorded events per operation.
	History HistoryReader
}

// NewMemoryJournal returns a journal backed by process memory.
// Non-durable; intended for tests and diagnostics.
func NewMemoryJournal() *Journal {
	rec := journal.NewMemoryRecorder()
	return &Journal{
		Observer: journal.NewObserver(rec, nil),
		History:  rec,
	}
}

// NewSQLiteJournal initializes the event table in the given DB and
// returns a journal persisting into it. Append failures are logged via
// logger (slog.Default if nil) and never stall operation execution.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:strand.db?_journal=WAL")
//	jrnl, err := strand.NewSQLiteJournal(db, nil)
//	sched := strand.NewScheduler(strand.SchedulerConfig{Observer: jrnl.Observer})
func NewSQLiteJournal(db *sql.DB, logger *slog.Logger) (*Journal, error) {
	rec, err := journal.NewSQLiteRecorder(db)
	if err != nil {
		return nil, err
	}
	return &Journal{
		Observer: journal.NewObserver(rec, logger),
		History:  rec,
	}, nil
}
