package store

import (
	"database/sql"
	"errors"
	"time"
)

// MeaningStatus is the review state of a custom meaning submission.
type MeaningStatus string

const (
	// MeaningPending awaits admin review.
	MeaningPending MeaningStatus = "pending"
	// MeaningApproved is usable in resolution.
	MeaningApproved MeaningStatus = "approved"
	// MeaningRejected was declined by an admin.
	MeaningRejected MeaningStatus = "rejected"
)

// Meaning is a user-submitted custom meaning for a gesture. Username is only
// populated by the admin listings.
type Meaning struct {
	ID         int64
	Gesture    string
	Text       string
	Language   string
	UserID     int64
	Status     MeaningStatus
	ReviewedBy string
	Username   string
	CreatedAt  time.Time
}

// MeaningRepository provides operations over custom meaning submissions.
type MeaningRepository struct {
	db *sql.DB
}

// Meanings returns the meaning repository for this store.
func (s *Store) Meanings() *MeaningRepository {
	return &MeaningRepository{db: s.db}
}

// Create inserts a new submission in pending state.
func (r *MeaningRepository) Create(m *Meaning) error {
	m.Status = MeaningPending
	m.CreatedAt = time.Now()

	result, err := r.db.Exec(
		`INSERT INTO gesture_meanings (gesture_name, custom_meaning, language, user_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Gesture, m.Text, m.Language, m.UserID, string(m.Status), m.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

// Review sets the status and reviewer of a submission. Re-reviewing is
// allowed and overwrites both fields.
func (r *MeaningRepository) Review(id int64, status MeaningStatus, reviewer string) error {
	result, err := r.db.Exec(
		`UPDATE gesture_meanings SET status = ?, reviewed_by = ? WHERE id = ?`,
		string(status), reviewer, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// LatestApproved returns the most recent approved meaning for a gesture and
// user, or nil when there is none.
func (r *MeaningRepository) LatestApproved(gesture string, userID int64) (*Meaning, error) {
	m, err := scanMeaning(r.db.QueryRow(
		`SELECT id, gesture_name, custom_meaning, language, user_id, status, reviewed_by, created_at
		 FROM gesture_meanings
		 WHERE gesture_name = ? AND user_id = ? AND status = 'approved'
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		gesture, userID,
	))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return m, err
}

// ListByUser returns a user's submissions, newest first.
func (r *MeaningRepository) ListByUser(userID int64) ([]*Meaning, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture_name, custom_meaning, language, user_id, status, reviewed_by, created_at
		 FROM gesture_meanings WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMeanings(rows, false)
}

// List returns submissions across all users, newest first, with usernames
// joined in. An empty status lists everything.
func (r *MeaningRepository) List(status MeaningStatus) ([]*Meaning, error) {
	query := `SELECT m.id, m.gesture_name, m.custom_meaning, m.language, m.user_id, m.status, m.reviewed_by, m.created_at, u.username
		 FROM gesture_meanings m
		 JOIN users u ON u.id = m.user_id`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE m.status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY m.created_at DESC, m.id DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMeanings(rows, true)
}

func scanMeaning(row interface{ Scan(...interface{}) error }) (*Meaning, error) {
	m := &Meaning{}
	var status string
	var reviewedBy sql.NullString

	err := row.Scan(&m.ID, &m.Gesture, &m.Text, &m.Language, &m.UserID, &status, &reviewedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m.Status = MeaningStatus(status)
	m.ReviewedBy = reviewedBy.String
	return m, nil
}

func scanMeanings(rows *sql.Rows, withUsername bool) ([]*Meaning, error) {
	var meanings []*Meaning
	for rows.Next() {
		m := &Meaning{}
		var status string
		var reviewedBy sql.NullString

		var err error
		if withUsername {
			err = rows.Scan(&m.ID, &m.Gesture, &m.Text, &m.Language, &m.UserID, &status, &reviewedBy, &m.CreatedAt, &m.Username)
		} else {
			err = rows.Scan(&m.ID, &m.Gesture, &m.Text, &m.Language, &m.UserID, &status, &reviewedBy, &m.CreatedAt)
		}
		if err != nil {
			return nil, err
		}

		m.Status = MeaningStatus(status)
		m.ReviewedBy = reviewedBy.String
		meanings = append(meanings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return meanings, nil
}
