// internal/engagement/engagement.go
//
// Engagement event storage.
//
// Context
// -------
// The UI reports lightweight interaction events (viewed, favorited,
// shared) against a specific day and slot.  Rows land in one append-only
// table:
//
//	engagement (id PK, user_id, day, slot, action, device, created_at)
//
// `device` is the coarse class parsed from the User-Agent by the
// requestinfo middleware ("Desktop", "Mobile", "Tablet", or "Other"); it
// exists for the analytics dashboards and is best-effort.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package engagement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Action is the interaction kind.
type Action string

const (
	ActionViewed    Action = "viewed"
	ActionFavorited Action = "favorited"
	ActionShared    Action = "shared"
)

// ParseAction validates a client-supplied action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionViewed, ActionFavorited, ActionShared:
		return Action(s), nil
	}
	return "", fmt.Errorf("engagement: unknown action %q", s)
}

// Event mirrors one row of engagement.
type Event struct {
	ID        string    `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	Day       string    `db:"day"        json:"day"` // YYYY-MM-DD
	Slot      string    `db:"slot"       json:"slot"`
	Action    Action    `db:"action"     json:"action"`
	Device    string    `db:"device"     json:"device"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Insert appends one event and returns it with ID and timestamp set.
func Insert(ctx context.Context, db *sqlx.DB, e Event) (*Event, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	const q = `
        INSERT INTO engagement
               (id, user_id, day, slot, action, device, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, q,
		e.ID, e.UserID, e.Day, e.Slot, e.Action, e.Device, e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// ByUserSince returns a user's events on or after day, newest first.
// Used by the dashboards to draw streaks.
func ByUserSince(ctx context.Context, db *sqlx.DB, userID, day string) ([]Event, error) {
	const q = `
        SELECT id, user_id, day, slot, action, device, created_at
        FROM   engagement
        WHERE  user_id = ?
          AND  day >= ?
        ORDER  BY created_at DESC`
	var rows []Event
	if err := db.SelectContext(ctx, &rows, q, userID, day); err != nil {
		return nil, err
	}
	return rows, nil
}
