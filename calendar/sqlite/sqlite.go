// Package sqlite provides a CalendarStore backed by an embedded SQLite
// database, for assistants that need their calendar to survive restarts
// without an external provider.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hupe1980/meetingmesh/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	start_time  TEXT NOT NULL,
	end_time    TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	attendees   TEXT NOT NULL DEFAULT '[]',
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meetings_start ON meetings (start_time);
`

// Store is a CalendarStore persisting meetings in a SQLite database. Times
// are stored as RFC 3339 UTC strings so lexicographic comparison matches
// chronological order.
type Store struct {
	db *sql.DB
}

// Interface compliance (compile-time assertion).
var _ core.CalendarStore = (*Store)(nil)

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// An in-memory database exists per connection; a second pooled
	// connection would see an empty schema.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetEvents returns every meeting overlapping [start, end), ordered by
// start time.
func (s *Store) GetEvents(ctx context.Context, start, end time.Time) ([]core.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, start_time, end_time, description, location, attendees
		FROM meetings
		WHERE start_time < ? AND end_time > ?
		ORDER BY start_time`,
		end.UTC().Format(time.RFC3339),
		start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query events: %w", err)
	}
	defer rows.Close()

	var out []core.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate events: %w", err)
	}
	return out, nil
}

// CreateEvent stores the meeting, assigning a fresh event id when none is
// present, and returns the stored copy.
func (s *Store) CreateEvent(ctx context.Context, m core.Meeting) (core.Meeting, error) {
	if err := m.Validate(); err != nil {
		return core.Meeting{}, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Attendees = core.NormalizeAttendees(m.Attendees)

	attendees, err := json.Marshal(m.Attendees)
	if err != nil {
		return core.Meeting{}, fmt.Errorf("sqlite: encode attendees: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO meetings (id, title, start_time, end_time, description, location, attendees, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Title,
		m.Start.UTC().Format(time.RFC3339),
		m.End.UTC().Format(time.RFC3339),
		m.Description,
		m.Location,
		string(attendees),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return core.Meeting{}, fmt.Errorf("sqlite: insert meeting: %w", err)
	}
	return m, nil
}

// DeleteEvent removes the meeting by its event id.
func (s *Store) DeleteEvent(ctx context.Context, m core.Meeting) error {
	if m.ID == "" {
		return core.ErrNoEventID
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, m.ID)
	if err != nil {
		return fmt.Errorf("sqlite: delete meeting: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete meeting: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func scanMeeting(rows *sql.Rows) (core.Meeting, error) {
	var (
		m          core.Meeting
		start, end string
		attendees  string
	)
	if err := rows.Scan(&m.ID, &m.Title, &start, &end, &m.Description, &m.Location, &attendees); err != nil {
		return core.Meeting{}, fmt.Errorf("sqlite: scan meeting: %w", err)
	}
	var err error
	if m.Start, err = time.Parse(time.RFC3339, start); err != nil {
		return core.Meeting{}, fmt.Errorf("sqlite: parse start %q: %w", start, err)
	}
	if m.End, err = time.Parse(time.RFC3339, end); err != nil {
		return core.Meeting{}, fmt.Errorf("sqlite: parse end %q: %w", end, err)
	}
	if err := json.Unmarshal([]byte(attendees), &m.Attendees); err != nil {
		return core.Meeting{}, fmt.Errorf("sqlite: decode attendees: %w", err)
	}
	return m, nil
}
