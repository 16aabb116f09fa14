package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Name         string
	Age          int // 0 means unset
	City         string
	CreatedAt    time.Time
}

// UserRepository provides CRUD operations for users.
type UserRepository struct {
	db *sql.DB
}

// Users returns the user repository for this store.
func (s *Store) Users() *UserRepository {
	return &UserRepository{db: s.db}
}

// isUniqueViolation reports whether err is a sqlite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user. Returns ErrDuplicate when the username or email
// is already taken.
func (r *UserRepository) Create(u *User) error {
	u.CreatedAt = time.Now()

	var age interface{}
	if u.Age > 0 {
		age = u.Age
	}

	result, err := r.db.Exec(
		`INSERT INTO users (username, email, password_hash, name, age, city, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Name, age, u.City, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id

	return nil
}

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	u := &User{}
	var age sql.NullInt64

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &age, &u.City, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if age.Valid {
		u.Age = int(age.Int64)
	}
	return u, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(id int64) (*User, error) {
	return scanUser(r.db.QueryRow(
		`SELECT id, username, email, password_hash, name, age, city, created_at
		 FROM users WHERE id = ?`, id,
	))
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(username string) (*User, error) {
	return scanUser(r.db.QueryRow(
		`SELECT id, username, email, password_hash, name, age, city, created_at
		 FROM users WHERE username = ?`, username,
	))
}

// UpdateProfile updates the editable profile fields of a user.
// Returns ErrDuplicate if the new email belongs to another user.
func (r *UserRepository) UpdateProfile(id int64, name, email string, age int, city string) error {
	var ageVal interface{}
	if age > 0 {
		ageVal = age
	}

	result, err := r.db.Exec(
		`UPDATE users SET name = ?, email = ?, age = ?, city = ? WHERE id = ?`,
		name, email, ageVal, city, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
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

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	result, err := r.db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
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

// List retrieves all users, newest first.
func (r *UserRepository) List() ([]*User, error) {
	rows, err := r.db.Query(
		`SELECT id, username, email, password_hash, name, age, city, created_at
		 FROM users ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Delete removes a user by id.
func (r *UserRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
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
