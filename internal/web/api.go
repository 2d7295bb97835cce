// internal/web/api.go
//
// JSON API surface.
//
// Context
// -------
// Everything user-facing that the Go service owns hangs off this router:
// the daily spark, the recomputed archive, occasion countdowns, rarity
// styling, pre-rendered SEO payloads, and the engagement write path.
// Auth and billing live in external collaborators; the edge passes the
// caller's subscription level through the X-Luvora-Tier header and this
// layer treats it as ground truth.
//
// Error mapping
// -------------
//   • spark.ErrInvalidDate, spark.ErrUnknownTarget  → 400
//   • *spark.EmptyPoolError                          → 503 (pool defect)
//   • missing database                               → 503 on write paths
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/luvora/luvora/internal/archive"
	"github.com/luvora/luvora/internal/engagement"
	"github.com/luvora/luvora/internal/metrics"
	"github.com/luvora/luvora/internal/occasion"
	"github.com/luvora/luvora/internal/pool"
	"github.com/luvora/luvora/internal/requestinfo"
	"github.com/luvora/luvora/internal/seo"
	"github.com/luvora/luvora/internal/spark"
	"github.com/luvora/luvora/internal/tier"
)

// TierHeader carries the caller's subscription level from the edge.
const TierHeader = "X-Luvora-Tier"

// API bundles the handlers' dependencies.  DB may be nil, in which case
// the write endpoints answer 503 and everything else still works.
type API struct {
	Pool *pool.Store
	DB   *sqlx.DB

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	pagesMu sync.Mutex
	pages   *seo.PageCache
}

// New constructs the API.
func New(store *pool.Store, db *sqlx.DB) *API {
	return &API{
		Pool:  store,
		DB:    db,
		Now:   time.Now,
		pages: seo.NewPageCache(16),
	}
}

// Router builds the chi handler tree.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)

	r.Get("/healthz", a.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/spark/today", a.handleSparkToday)
		r.Get("/spark/{date}", a.handleSparkDate)
		r.Get("/archive", a.handleArchive)
		r.Get("/occasions/next", a.handleOccasions)
		r.Get("/occasions/days-until", a.handleDaysUntil)
		r.Get("/rarities", a.handleRarities)
		r.Get("/seo/{target}", a.handleSEO)
		r.Post("/engagements", a.handleEngagement)
	})
	return r
}

/*──────────────────────────── read handlers ────────────────────────────────*/

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	p, err := a.Pool.Get()
	if err != nil {
		writeErr(w, http.StatusServiceUnavailable, "pool unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"pool_version": p.Version,
	})
}

func (a *API) handleSparkToday(w http.ResponseWriter, r *http.Request) {
	a.serveSpark(w, r, a.Now().UTC())
}

func (a *API) handleSparkDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		// Never default to "today": archive and SEO consumers rely on
		// the date they asked for.
		writeErr(w, http.StatusBadRequest, "bad date, want YYYY-MM-DD")
		return
	}
	a.serveSpark(w, r, day)
}

func (a *API) serveSpark(w http.ResponseWriter, r *http.Request, day time.Time) {
	p, target, t, ok := a.begin(w, r)
	if !ok {
		return
	}

	daily, err := spark.Select(p, day, target, t)
	if err != nil {
		sparkError(w, err)
		return
	}
	metrics.SparkSelectTotal.WithLabelValues(string(daily.Morning.Rarity)).Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"date":    day.UTC().Format("2006-01-02"),
		"target":  target,
		"morning": daily.Morning,
		"night":   daily.Night,
	})
}

func (a *API) handleArchive(w http.ResponseWriter, r *http.Request) {
	p, target, t, ok := a.begin(w, r)
	if !ok {
		return
	}

	days, err := archive.History(p, target, t, a.Now())
	if err != nil {
		sparkError(w, err)
		return
	}
	metrics.ArchiveRequestsTotal.WithLabelValues(t.String()).Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"target": target,
		"tier":   t.String(),
		"window": archive.Window(t),
		"days":   days,
	})
}

func (a *API) handleOccasions(w http.ResponseWriter, r *http.Request) {
	p, err := a.Pool.Get()
	if err != nil {
		poolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, occasion.Next(p, a.Now()))
}

// handleDaysUntil answers countdowns for per-user anchors (anniversary,
// birthday) that live outside the pool's fixed calendar.
func (a *API) handleDaysUntil(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "month must be numeric")
		return
	}
	day, err := strconv.Atoi(r.URL.Query().Get("day"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "day must be numeric")
		return
	}
	if err := occasion.Validate(time.Month(month), day); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"month":      month,
		"day":        day,
		"days_until": occasion.DaysUntil(time.Month(month), day, a.Now()),
	})
}

func (a *API) handleRarities(w http.ResponseWriter, r *http.Request) {
	out := map[pool.Rarity]spark.Info{}
	for _, rar := range []pool.Rarity{
		pool.RarityCommon, pool.RarityRare, pool.RarityEpic, pool.RarityLegendary,
	} {
		out[rar] = spark.RarityInfo(rar)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleSEO(w http.ResponseWriter, r *http.Request) {
	p, err := a.Pool.Get()
	if err != nil {
		poolError(w, err)
		return
	}
	target := pool.Target(chi.URLParam(r, "target"))

	day := a.Now().UTC()
	date := day.Format("2006-01-02")

	a.pagesMu.Lock()
	page, hit := a.pages.Get(date, target)
	a.pagesMu.Unlock()

	if !hit {
		page, err = seo.Materialize(p, day, target)
		if err != nil {
			sparkError(w, err)
			return
		}
		a.pagesMu.Lock()
		a.pages.Add(date, target, page)
		a.pagesMu.Unlock()
	}
	writeJSON(w, http.StatusOK, page)
}

/*──────────────────────────── write handlers ───────────────────────────────*/

type engagementBody struct {
	UserID string `json:"user_id"`
	Day    string `json:"day"`
	Slot   string `json:"slot"`
	Action string `json:"action"`
}

func (a *API) handleEngagement(w http.ResponseWriter, r *http.Request) {
	if a.DB == nil {
		writeErr(w, http.StatusServiceUnavailable, "engagement store offline")
		return
	}

	var body engagementBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "bad JSON body")
		return
	}
	action, err := engagement.ParseAction(body.Action)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.UserID == "" {
		writeErr(w, http.StatusBadRequest, "user_id required")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Day); err != nil {
		writeErr(w, http.StatusBadRequest, "bad day, want YYYY-MM-DD")
		return
	}
	if body.Slot != string(spark.SlotMorning) && body.Slot != string(spark.SlotNight) {
		writeErr(w, http.StatusBadRequest, "slot must be morning or night")
		return
	}

	ev, err := engagement.Insert(r.Context(), a.DB, engagement.Event{
		UserID: body.UserID,
		Day:    body.Day,
		Slot:   body.Slot,
		Action: action,
		Device: requestinfo.DeviceClass(r.Context()),
	})
	if err != nil {
		zap.S().Errorw("engagement insert failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "store error")
		return
	}
	metrics.EngagementWritesTotal.Inc()
	writeJSON(w, http.StatusCreated, ev)
}

/*──────────────────────────── shared plumbing ──────────────────────────────*/

// begin resolves the pool, target, and tier for read handlers, writing
// the error response itself on failure.
func (a *API) begin(w http.ResponseWriter, r *http.Request) (*pool.Pool, pool.Target, tier.Tier, bool) {
	p, err := a.Pool.Get()
	if err != nil {
		poolError(w, err)
		return nil, "", tier.Free, false
	}

	target := pool.Target(r.URL.Query().Get("target"))
	if target == "" {
		target = pool.TargetNeutral
	}

	t, err := tier.Parse(r.Header.Get(TierHeader))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return nil, "", tier.Free, false
	}
	return p, target, t, true
}

func poolError(w http.ResponseWriter, err error) {
	metrics.PoolLoadErrorsTotal.Inc()
	zap.S().Errorw("pool load failed", "err", err)
	writeErr(w, http.StatusServiceUnavailable, "pool unavailable")
}

func sparkError(w http.ResponseWriter, err error) {
	var empty *spark.EmptyPoolError
	switch {
	case errors.Is(err, spark.ErrInvalidDate), errors.Is(err, spark.ErrUnknownTarget):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &empty):
		metrics.SparkSelectErrorsTotal.Inc()
		zap.S().Errorw("empty candidate pool",
			"slot", empty.Slot, "target", empty.Target)
		writeErr(w, http.StatusServiceUnavailable, err.Error())
	default:
		zap.S().Errorw("selector failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "selection error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
