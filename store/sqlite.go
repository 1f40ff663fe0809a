package store

import (
	"database/sql"
	"time"

	"linebell/models"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.init(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		fire_at TEXT NOT NULL,
		message TEXT NOT NULL,
		periodic INTEGER DEFAULT 0,
		recurrence TEXT DEFAULT NULL,
		last_fired TEXT DEFAULT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders(user_id);
	CREATE INDEX IF NOT EXISTS idx_reminders_fire_at ON reminders(fire_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Reminder operations

func (s *Store) CreateReminder(userID, fireAt, message string) (*models.Reminder, error) {
	return s.insertReminder(userID, fireAt, message, false, "")
}

func (s *Store) CreatePeriodicReminder(userID, recurrence, fireAt, message string) (*models.Reminder, error) {
	return s.insertReminder(userID, fireAt, message, true, recurrence)
}

func (s *Store) insertReminder(userID, fireAt, message string, periodic bool, recurrence string) (*models.Reminder, error) {
	reminder := &models.Reminder{
		UserID:     userID,
		FireAt:     fireAt,
		Message:    message,
		Periodic:   periodic,
		Recurrence: recurrence,
		CreatedAt:  time.Now(),
	}

	var rec interface{}
	if periodic {
		rec = recurrence
	}

	res, err := s.db.Exec(`
		INSERT INTO reminders (user_id, fire_at, message, periodic, recurrence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, reminder.UserID, reminder.FireAt, reminder.Message, reminder.Periodic, rec, reminder.CreatedAt)
	if err != nil {
		return nil, err
	}

	reminder.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *Store) GetRemindersForUser(userID string) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, fire_at, message, periodic, recurrence, last_fired, created_at
		FROM reminders
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, fire_at, message, periodic, recurrence, last_fired, created_at
		FROM reminders
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

// GetDueReminders returns reminders across all users whose fire_at matches the
// given HH:MM and which have not already fired during minuteKey.
func (s *Store) GetDueReminders(fireAt, minuteKey string) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, fire_at, message, periodic, recurrence, last_fired, created_at
		FROM reminders
		WHERE fire_at = ? AND (last_fired IS NULL OR last_fired <> ?)
		ORDER BY id ASC
	`, fireAt, minuteKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

// MarkReminderFired stamps the minute a reminder was last delivered in, so a
// second scan inside the same minute skips it.
func (s *Store) MarkReminderFired(id int64, minuteKey string) error {
	_, err := s.db.Exec("UPDATE reminders SET last_fired = ? WHERE id = ?", minuteKey, id)
	return err
}

// DeleteReminder removes the reminder matching both id and user. It reports
// whether a row was actually deleted; deleting someone else's reminder or a
// missing id is a no-op.
func (s *Store) DeleteReminder(id int64, userID string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM reminders WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanReminders(rows *sql.Rows) ([]models.Reminder, error) {
	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		var recurrence, lastFired sql.NullString
		err := rows.Scan(&r.ID, &r.UserID, &r.FireAt, &r.Message, &r.Periodic, &recurrence, &lastFired, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		r.Recurrence = recurrence.String
		r.LastFired = lastFired.String
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
