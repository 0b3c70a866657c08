package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/savemypet/storefront/internal/core/domain"
)

// ActivityRepository is the append-only audit trail. No update or delete
// path exists.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Record(ctx context.Context, userID *int64, action string) error {
	var uid sql.NullInt64
	if userID != nil {
		uid = sql.NullInt64{Int64: *userID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (userId, action, timestamp) VALUES (?, ?, ?)`,
		uid, action, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Latest returns up to limit entries, newest first, joined with the acting
// user's email and name when the account still exists.
func (r *ActivityRepository) Latest(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT al.id, al.userId, al.action, al.timestamp, COALESCE(u.email, ''), COALESCE(u.name, '')
		 FROM activity_log al
		 LEFT JOIN users u ON al.userId = u.id
		 ORDER BY al.timestamp DESC, al.id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := []domain.ActivityEntry{}
	for rows.Next() {
		var e domain.ActivityEntry
		var uid sql.NullInt64
		var ts string
		if err := rows.Scan(&e.ID, &uid, &e.Action, &ts, &e.UserEmail, &e.UserName); err != nil {
			return nil, fmt.Errorf("list activity: %w", err)
		}
		if uid.Valid {
			id := uid.Int64
			e.UserID = &id
		}
		e.Timestamp = parseTime(ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
