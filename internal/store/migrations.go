package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Users table - registered accounts
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			age INTEGER,
			city TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Gesture events table - append-only detection log, partitioned by
		// subject: exactly one of user_id/guest_id is set per row. Deleting
		// a user takes their events with them, keeping the CHECK intact.
		`CREATE TABLE IF NOT EXISTS gesture_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			guest_id TEXT,
			gesture TEXT NOT NULL,
			action_text TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK ((user_id IS NULL) != (guest_id IS NULL))
		)`,

		// Gesture meanings table - user-submitted custom meanings awaiting
		// admin review
		`CREATE TABLE IF NOT EXISTS gesture_meanings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gesture_name TEXT NOT NULL,
			custom_meaning TEXT NOT NULL,
			language TEXT NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'approved', 'rejected')),
			reviewed_by TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_gesture_events_user_id ON gesture_events(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gesture_events_guest_id ON gesture_events(guest_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gesture_meanings_user_id ON gesture_meanings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gesture_meanings_lookup ON gesture_meanings(gesture_name, user_id, status)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
