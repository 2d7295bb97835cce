// internal/web/api_test.go
//
// Handler tests for the JSON API.
//
// Context
// -------
// Each sub-test builds a Store over a temp pool file, fixes the API
// clock, fires httptest requests through the full chi router, and
// asserts status codes and payload fields.  The write path is covered
// both without a database (503) and with sqlmock.
//
// Run: go test ./internal/web -v

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/luvora/luvora/internal/pool"
)

const testPoolDoc = `{
	"version": 4,
	"messages": {
		"morning": {
			"poetic": [
				{"content": "m1", "target": "neutral", "tone": "poetic"},
				{"content": "m2", "target": "neutral", "tone": "poetic", "rarity": "rare"},
				{"content": "m-him", "target": "masculine", "tone": "poetic"}
			]
		},
		"night": {
			"romantic": [
				{"content": "n1", "target": "neutral", "tone": "romantic"},
				{"content": "n2", "target": "neutral", "tone": "romantic", "rarity": "rare"}
			]
		},
		"special_occasions": {
			"valentines": [{"content": "v", "occasion": "valentines"}]
		}
	}
}`

func newTestAPI(t *testing.T, db *sqlx.DB) *API {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.json")
	if err := os.WriteFile(path, []byte(testPoolDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New(pool.NewStore(path), db)
	a.Now = func() time.Time {
		return time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)
	}
	return a
}

func doJSON(t *testing.T, h http.Handler, req *http.Request, wantCode int) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != wantCode {
		t.Fatalf("%s %s: status %d, want %d (body %s)",
			req.Method, req.URL, rec.Code, wantCode, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON body: %v", err)
	}
	return body
}

func TestSparkToday(t *testing.T) {
	h := newTestAPI(t, nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/api/spark/today?target=feminine", nil)
	body := doJSON(t, h, req, http.StatusOK)

	if body["date"] != "2025-06-10" {
		t.Fatalf("date = %v", body["date"])
	}
	morning := body["morning"].(map[string]any)
	if morning["content"] == "" || morning["content"] == "m-him" {
		t.Fatalf("bad morning pick: %v", morning)
	}

	// Repeat call is byte-identical.
	again := doJSON(t, h, httptest.NewRequest(http.MethodGet,
		"/api/spark/today?target=feminine", nil), http.StatusOK)
	if again["morning"].(map[string]any)["content"] != morning["content"] {
		t.Fatal("today endpoint is not stable within a day")
	}
}

func TestSparkByDate(t *testing.T) {
	h := newTestAPI(t, nil).Router()

	body := doJSON(t, h, httptest.NewRequest(http.MethodGet,
		"/api/spark/2025-01-15", nil), http.StatusOK)
	if body["date"] != "2025-01-15" {
		t.Fatalf("date = %v", body["date"])
	}

	// Unparseable dates are a 400, never a silent "today".
	errBody := doJSON(t, h, httptest.NewRequest(http.MethodGet,
		"/api/spark/yesterday", nil), http.StatusBadRequest)
	if errBody["error"] == "" {
		t.Fatal("missing error message")
	}
}

func TestSparkUnknownTarget(t *testing.T) {
	h := newTestAPI(t, nil).Router()
	doJSON(t, h, httptest.NewRequest(http.MethodGet,
		"/api/spark/today?target=robot", nil), http.StatusBadRequest)
}

func TestArchiveWindows(t *testing.T) {
	h := newTestAPI(t, nil).Router()

	cases := []struct {
		header string
		window float64
	}{
		{"", 7},
		{"hero", 30},
		{"legend", 90},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/archive", nil)
		if c.header != "" {
			req.Header.Set(TierHeader, c.header)
		}
		body := doJSON(t, h, req, http.StatusOK)
		if body["window"] != c.window {
			t.Errorf("tier %q: window = %v, want %v", c.header, body["window"], c.window)
		}
		if days := body["days"].([]any); float64(len(days)) != c.window {
			t.Errorf("tier %q: %d rows, want %v", c.header, len(days), c.window)
		}
	}

	// Garbage tier header is rejected, not degraded.
	req := httptest.NewRequest(http.MethodGet, "/api/archive", nil)
	req.Header.Set(TierHeader, "platinum")
	doJSON(t, h, req, http.StatusBadRequest)
}

func TestOccasions(t *testing.T) {
	h := newTestAPI(t, nil).Router()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/occasions/next", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0]["name"] != "valentines" {
		t.Fatalf("occasions = %v", got)
	}
}

func TestDaysUntil(t *testing.T) {
	h := newTestAPI(t, nil).Router()

	// Clock is pinned to 2025-06-10.
	cases := []struct {
		name  string
		query string
		code  int
		want  float64 // days_until, checked on 200 only
	}{
		{"christmas", "month=12&day=25", http.StatusOK, 198},
		{"leap anchor observed feb 28", "month=2&day=29", http.StatusOK, 263},
		{"same day is zero", "month=6&day=10", http.StatusOK, 0},
		{"month out of range", "month=13&day=1", http.StatusBadRequest, 0},
		{"day out of range", "month=2&day=30", http.StatusBadRequest, 0},
		{"non-numeric", "month=june&day=1", http.StatusBadRequest, 0},
		{"missing params", "", http.StatusBadRequest, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/occasions/days-until?"+c.query, nil)
			body := doJSON(t, h, req, c.code)
			if c.code == http.StatusOK && body["days_until"] != c.want {
				t.Fatalf("days_until = %v, want %v", body["days_until"], c.want)
			}
		})
	}
}

func TestSEOPage(t *testing.T) {
	h := newTestAPI(t, nil).Router()

	body := doJSON(t, h, httptest.NewRequest(http.MethodGet,
		"/api/seo/feminine", nil), http.StatusOK)
	if body["slug"] != "romantic-messages-for-her" {
		t.Fatalf("slug = %v", body["slug"])
	}
	if body["date"] != "2025-06-10" {
		t.Fatalf("date = %v", body["date"])
	}

	// Second hit serves the cached payload; content must not change.
	again := doJSON(t, h, httptest.NewRequest(http.MethodGet,
		"/api/seo/feminine", nil), http.StatusOK)
	if again["slug"] != body["slug"] || again["date"] != body["date"] {
		t.Fatal("cached SEO payload drifted")
	}
}

func TestHealthz(t *testing.T) {
	h := newTestAPI(t, nil).Router()
	body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/healthz", nil), http.StatusOK)
	if body["status"] != "ok" || body["pool_version"] != float64(4) {
		t.Fatalf("health = %v", body)
	}
}

func TestEngagementWithoutDB(t *testing.T) {
	h := newTestAPI(t, nil).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/engagements",
		strings.NewReader(`{"user_id":"u-1","day":"2025-06-10","slot":"morning","action":"viewed"}`))
	doJSON(t, h, req, http.StatusServiceUnavailable)
}

func TestEngagementInsert(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO engagement`)).
		WithArgs(sqlmock.AnyArg(), "u-1", "2025-06-10", "morning", "viewed",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := newTestAPI(t, db).Router()
	req := httptest.NewRequest(http.MethodPost, "/api/engagements",
		strings.NewReader(`{"user_id":"u-1","day":"2025-06-10","slot":"morning","action":"viewed"}`))
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15")

	body := doJSON(t, h, req, http.StatusCreated)
	if body["action"] != "viewed" || body["user_id"] != "u-1" {
		t.Fatalf("event = %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}

	// Validation failures never reach the store.
	for _, bad := range []string{
		`{"user_id":"","day":"2025-06-10","slot":"morning","action":"viewed"}`,
		`{"user_id":"u-1","day":"June 10","slot":"morning","action":"viewed"}`,
		`{"user_id":"u-1","day":"2025-06-10","slot":"noon","action":"viewed"}`,
		`{"user_id":"u-1","day":"2025-06-10","slot":"morning","action":"liked"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/engagements", strings.NewReader(bad))
		doJSON(t, h, req, http.StatusBadRequest)
	}
}
