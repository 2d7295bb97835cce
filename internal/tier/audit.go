// internal/tier/audit.go
//
// Query helpers for the tier-change audit trail.
//
// Context
// -------
// Every upgrade or downgrade is appended to one table:
//
//	tier_audit (id PK, user_id, from_tier, to_tier, reason, actor, created_at)
//
// Rows are insert-only; billing disputes are settled by reading the
// trail, never by editing it.  The helpers take a *sqlx.DB scoped by the
// caller and run simple parameterised queries; callers may wrap results
// in their own cache if they need one.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package tier

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Change mirrors one row of tier_audit.
type Change struct {
	ID        string    `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	FromTier  Tier      `db:"from_tier"  json:"from_tier"`
	ToTier    Tier      `db:"to_tier"    json:"to_tier"`
	Reason    string    `db:"reason"     json:"reason"`
	Actor     string    `db:"actor"      json:"actor"` // "billing", "admin", "system"
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Record appends one change to the trail and returns it with the
// generated ID and timestamp filled in.
func Record(ctx context.Context, db *sqlx.DB, c Change) (*Change, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	const q = `
        INSERT INTO tier_audit
               (id, user_id, from_tier, to_tier, reason, actor, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, q,
		c.ID, c.UserID, c.FromTier, c.ToTier, c.Reason, c.Actor, c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ByUser returns a user's changes, newest first.
func ByUser(ctx context.Context, db *sqlx.DB, userID string) ([]Change, error) {
	const q = `
        SELECT id, user_id, from_tier, to_tier, reason, actor, created_at
        FROM   tier_audit
        WHERE  user_id = ?
        ORDER  BY created_at DESC`
	var rows []Change
	if err := db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

// Current derives the user's present tier from the trail.  A user with
// no rows is Free.
func Current(ctx context.Context, db *sqlx.DB, userID string) (Tier, error) {
	const q = `
        SELECT to_tier
        FROM   tier_audit
        WHERE  user_id = ?
        ORDER  BY created_at DESC
        LIMIT  1`
	var t Tier
	err := db.GetContext(ctx, &t, q, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Free, nil
	}
	if err != nil {
		return Free, err
	}
	return t, nil
}
