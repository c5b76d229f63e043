package activity

import (
	"log"
	"time"

	"github.com/yourusername/lokanta-backend/internal/database"
)

// Entry is a single audit record for an admin action
type Entry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	Detail    string    `json:"detail"`
	ClientIP  string    `json:"clientIp"`
	CreatedAt time.Time `json:"createdAt"`
}

// Logger records admin actions in the audit table. Recording is best
// effort: a failed insert is logged and otherwise ignored so an audit
// problem never blocks the action itself.
type Logger struct {
	db *database.DB
}

// NewLogger creates an activity logger backed by the database
func NewLogger(db *database.DB) *Logger {
	return &Logger{db: db}
}

// Record inserts one audit entry
func (l *Logger) Record(action, entity, detail, clientIP string) {
	if l == nil || l.db == nil {
		return
	}
	_, err := l.db.Exec(
		"INSERT INTO activity_log (action, entity, detail, client_ip) VALUES (?, ?, ?, ?)",
		action, entity, detail, clientIP,
	)
	if err != nil {
		log.Printf("[Activity] Failed to record %s: %v", action, err)
	}
}

// Recent returns the newest entries, capped at limit
func (l *Logger) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.Query(
		"SELECT id, action, entity, detail, client_ip, created_at FROM activity_log ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.Detail, &e.ClientIP, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
