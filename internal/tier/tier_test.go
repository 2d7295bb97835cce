// internal/tier/tier_test.go
//
// Unit-tests for tier parsing and the audit-trail helpers (sqlmock).
//
// Run: go test ./internal/tier -v

package tier

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"", Free, false},
		{"free", Free, false},
		{"0", Free, false},
		{"hero", Hero, false},
		{"1", Hero, false},
		{"legend", Legend, false},
		{"2", Legend, false},
		{"gold", Free, true},
		{"3", Free, true},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("Parse(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestString(t *testing.T) {
	if Free.String() != "free" || Hero.String() != "hero" || Legend.String() != "legend" {
		t.Fatal("tier names drifted")
	}
	if Tier(7).String() != "tier(7)" {
		t.Fatalf("unknown tier formats as %q", Tier(7).String())
	}
}

func sampleTime() time.Time {
	return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestRecord(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO tier_audit (id, user_id, from_tier, to_tier, reason, actor, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)).
		WithArgs(sqlmock.AnyArg(), "u-1", Free, Hero, "checkout completed", "billing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := Record(context.Background(), db, Change{
		UserID:   "u-1",
		FromTier: Free,
		ToTier:   Hero,
		Reason:   "checkout completed",
		Actor:    "billing",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Fatalf("Record did not fill ID/CreatedAt: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestByUser(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "from_tier", "to_tier", "reason", "actor", "created_at",
	}).
		AddRow("c2", "u-1", 1, 2, "upgrade", "billing", sampleTime()).
		AddRow("c1", "u-1", 0, 1, "trial", "system", sampleTime())

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, user_id, from_tier, to_tier, reason, actor, created_at FROM tier_audit WHERE user_id = ? ORDER BY created_at DESC`,
	)).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := ByUser(context.Background(), db, "u-1")
	if err != nil {
		t.Fatalf("ByUser: %v", err)
	}
	if len(got) != 2 || got[0].ToTier != Legend || got[1].ToTier != Hero {
		t.Fatalf("unexpected trail: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCurrent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT to_tier FROM tier_audit WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`,
	)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"to_tier"}).AddRow(2))

	got, err := Current(context.Background(), db, "u-1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != Legend {
		t.Fatalf("Current = %v, want Legend", got)
	}

	// No rows means Free, not an error.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT to_tier FROM tier_audit`)).
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows([]string{"to_tier"}))

	got, err = Current(context.Background(), db, "u-2")
	if err != nil {
		t.Fatalf("Current (empty): %v", err)
	}
	if got != Free {
		t.Fatalf("Current (empty) = %v, want Free", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
