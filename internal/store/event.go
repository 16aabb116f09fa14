package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/keerthana/hushtone/internal/auth"
)

// Event is one immutable record of a debounced gesture detection. Username is
// only populated by the admin listing.
type Event struct {
	ID         int64
	Subject    auth.Subject
	Gesture    string
	ActionText string
	Username   string
	CreatedAt  time.Time
}

// EventRepository provides append and query operations over the gesture
// event log. Events are never updated or deleted individually.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record appends a gesture event for the given subject. Exactly one of the
// subject's user/guest identities must be set.
func (r *EventRepository) Record(sub auth.Subject, gesture, actionText string) error {
	var userID, guestID interface{}
	switch {
	case sub.IsUser():
		userID = sub.UserID
	case sub.IsGuest():
		guestID = sub.GuestID
	default:
		return fmt.Errorf("event subject must be a user or a guest")
	}

	_, err := r.db.Exec(
		`INSERT INTO gesture_events (user_id, guest_id, gesture, action_text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, guestID, gesture, actionText, time.Now(),
	)
	return err
}

// Recent returns up to limit events for the subject, newest first. Creation
// time ties are broken by insertion order.
func (r *EventRepository) Recent(sub auth.Subject, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error
	switch {
	case sub.IsUser():
		rows, err = r.db.Query(
			`SELECT id, user_id, guest_id, gesture, action_text, created_at
			 FROM gesture_events WHERE user_id = ?
			 ORDER BY created_at DESC, id DESC LIMIT ?`,
			sub.UserID, limit,
		)
	case sub.IsGuest():
		rows, err = r.db.Query(
			`SELECT id, user_id, guest_id, gesture, action_text, created_at
			 FROM gesture_events WHERE guest_id = ?
			 ORDER BY created_at DESC, id DESC LIMIT ?`,
			sub.GuestID, limit,
		)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows, false)
}

// ListAll returns up to limit events across all subjects, newest first, with
// the username joined in for registered users. Used by the admin history view.
func (r *EventRepository) ListAll(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT e.id, e.user_id, e.guest_id, e.gesture, e.action_text, e.created_at, COALESCE(u.username, '')
		 FROM gesture_events e
		 LEFT JOIN users u ON u.id = e.user_id
		 ORDER BY e.created_at DESC, e.id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows, true)
}

// ClearAll removes every event. This is the only delete the log supports.
func (r *EventRepository) ClearAll() error {
	_, err := r.db.Exec(`DELETE FROM gesture_events`)
	return err
}

func scanEvents(rows *sql.Rows, withUsername bool) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		e := &Event{}
		var userID sql.NullInt64
		var guestID sql.NullString

		var err error
		if withUsername {
			err = rows.Scan(&e.ID, &userID, &guestID, &e.Gesture, &e.ActionText, &e.CreatedAt, &e.Username)
		} else {
			err = rows.Scan(&e.ID, &userID, &guestID, &e.Gesture, &e.ActionText, &e.CreatedAt)
		}
		if err != nil {
			return nil, err
		}

		if userID.Valid {
			e.Subject = auth.UserSubject(userID.Int64)
		} else if guestID.Valid {
			e.Subject = auth.GuestSubject(guestID.String)
		}

		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
