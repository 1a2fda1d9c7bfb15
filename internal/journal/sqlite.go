package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/perjohansson/strand/pkg/operation"
)

// SQLiteRecorder stores operation events in SQLite.
type SQLiteRecorder struct {
	db *sql.DB
}

var _ Recorder = (*SQLiteRecorder)(nil)

// NewSQLiteRecorder initializes the events table in the given DB and
// returns a recorder writing to it.
func NewSQLiteRecorder(db *sql.DB) (*SQLiteRecorder, error) {
	r := &SQLiteRecorder{db: db}
	if err := r.initSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRecorder) initSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS operation_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operation_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_operation_events_operation_id ON operation_events(operation_id, id);
	`)
	return err
}

func (r *SQLiteRecorder) AppendEvent(ctx context.Context, ev operation.Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO operation_events (operation_id, at, type, detail)
		VALUES (?, ?, ?, ?)`,
		ev.OperationID,
		at.UnixNano(),
		string(ev.Type),
		ev.Detail,
	)
	return err
}

func (r *SQLiteRecorder) ListEvents(ctx context.Context, operationID string) ([]operation.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT operation_id, at, type, detail
		FROM operation_events
		WHERE operation_id = ?
		ORDER BY id ASC`, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []operation.Event
	for rows.Next() {
		var (
			id     string
			atN    int64
			typ    string
			detail string
		)
		if err := rows.Scan(&id, &atN, &typ, &detail); err != nil {
			return nil, err
		}
		out = append(out, operation.Event{
			OperationID: id,
			At:          time.Unix(0, atN),
			Type:        operation.EventType(typ),
			Detail:      detail,
		})
	}
	return out, rows.Err()
}
