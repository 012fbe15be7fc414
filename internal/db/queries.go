package db

import (
	"database/sql"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/errors"
)

// Setting keys. Each is read independently at startup and written
// synchronously on change; there is no cross-key atomicity requirement.
const (
	KeyPermissions = "permissions"
	KeyConnected   = "connected"
	KeyProfile     = "profile"
	KeyLanguage    = "language"
	KeyOnboarding  = "onboarding_complete"
)

// GetSetting returns the stored value for a key, or "" if absent.
// Callers treat an unparseable value the same as an absent one.
func GetSetting(db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return value, nil
}

// SetSetting stores a value for a key, replacing any previous value.
func SetSetting(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteSetting removes a key. Deleting an absent key is not an error.
func DeleteSetting(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertMessage appends one message to the transcript.
func InsertMessage(db *sql.DB, m *agent.Message) error {
	_, err := db.Exec(`
		INSERT INTO messages (id, role, body, created_at)
		VALUES (?, ?, ?, ?)
	`, m.ID, string(m.Role), m.Text, m.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListMessages returns the full transcript in append order (ULIDs sort
// chronologically, so ordering by id preserves insertion order).
func ListMessages(db *sql.DB) ([]agent.Message, error) {
	rows, err := db.Query("SELECT id, role, body, created_at FROM messages ORDER BY id")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var messages []agent.Message
	for rows.Next() {
		var m agent.Message
		var role string
		if err := rows.Scan(&m.ID, &role, &m.Text, &m.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		m.Role = agent.Role(role)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return messages, nil
}

// CountMessages returns the transcript length.
func CountMessages(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// ClearMessages deletes the whole transcript and returns how many messages
// were removed. Used by session resets (connect, disconnect, onboarding).
func ClearMessages(db *sql.DB) (int, error) {
	result, err := db.Exec("DELETE FROM messages")
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}
