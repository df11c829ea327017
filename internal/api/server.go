// Package api serves a built registry over a read-only JSON HTTP API.
package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/index"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/report"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/search"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// DefaultNearest is the result count of /nearest when n is not given.
const DefaultNearest = 5

// Registry is the read side of a built registry.
type Registry interface {
	Entities() []temple.Record
	Lookup(name string) (temple.Record, bool)
	Forward() *index.Forward
	Inverted() *index.Inverted
}

// Server handles API requests. The registry is never mutated, so handlers
// need no locking.
type Server struct {
	reg            Registry
	allowedOrigins []string
}

// NewServer creates a Server over reg. An empty allowedOrigins allows any.
func NewServer(reg Registry, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{reg: reg, allowedOrigins: allowedOrigins}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/temples", s.handleTemples)
	r.Get("/temples/{name}", s.handleTemple)
	r.Get("/forward/{attribute}", s.handleForward)
	r.Get("/inverted/{attribute}", s.handleInverted)
	r.Get("/inverted/{attribute}/{value}", s.handleInvertedValue)
	r.Get("/years", s.handleYears)
	r.Get("/summary", s.handleSummary)
	r.Get("/search", s.handleSearch)
	r.Get("/nearest", s.handleNearest)
	r.Get("/geojson", s.handleGeoJSON)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "temples": len(s.reg.Entities())})
}

func (s *Server) handleTemples(w http.ResponseWriter, _ *http.Request) {
	records := s.reg.Entities()
	out := make([]recordView, 0, len(records))
	for _, rec := range records {
		out = append(out, newRecordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTemple(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")
	rec, ok := s.reg.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown temple "+strconv.Quote(name))
		return
	}
	writeJSON(w, http.StatusOK, newRecordView(rec))
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	attr, ok := parseAttribute(w, urlParam(r, "attribute"))
	if !ok {
		return
	}
	col, _ := s.reg.Forward().Get(attr)
	writeJSON(w, http.StatusOK, map[string]any{"attribute": attr, "values": col})
}

type postingView struct {
	Value string   `json:"value"`
	Names []string `json:"names"`
}

func (s *Server) handleInverted(w http.ResponseWriter, r *http.Request) {
	attr, ok := parseIndexed(w, urlParam(r, "attribute"))
	if !ok {
		return
	}
	inv := s.reg.Inverted()
	values := inv.Values(attr)
	out := make([]postingView, 0, len(values))
	for _, v := range values {
		out = append(out, postingView{Value: v, Names: inv.Names(attr, v)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"attribute": attr, "postings": out})
}

func (s *Server) handleInvertedValue(w http.ResponseWriter, r *http.Request) {
	attr, ok := parseIndexed(w, urlParam(r, "attribute"))
	if !ok {
		return
	}
	value := urlParam(r, "value")
	names := s.reg.Inverted().Names(attr, value)
	if len(names) == 0 {
		writeError(w, http.StatusNotFound, "no temples with "+string(attr)+" "+strconv.Quote(value))
		return
	}
	writeJSON(w, http.StatusOK, postingView{Value: value, Names: names})
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	years, err := report.PerYear(s.reg.Inverted())
	if err != nil {
		zap.L().Error("per-year series failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "per-year series failed")
		return
	}
	writeJSON(w, http.StatusOK, years)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, report.Summary(s.reg.Inverted()))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	attrName := q.Get("attribute")
	if attrName == "" {
		attrName = string(temple.AttrName)
	}
	attr, ok := parseAttribute(w, attrName)
	if !ok {
		return
	}

	fuzzy := 0
	if v := q.Get("fuzzy"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "fuzzy must be a non-negative integer")
			return
		}
		fuzzy = n
	}

	records := search.Attribute(s.reg, attr, q.Get("q"), fuzzy)
	out := make([]recordView, 0, len(records))
	for _, rec := range records {
		out = append(out, newRecordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

type hitView struct {
	recordView
	DistanceKm float64 `json:"distance_km"`
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lng")
		return
	}
	n := DefaultNearest
	if v := q.Get("n"); v != "" {
		n, err = strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
	}

	hits, err := search.Nearest(s.reg.Entities(), lat, lng, n)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := make([]hitView, 0, len(hits))
	for _, h := range hits {
		out = append(out, hitView{recordView: newRecordView(h.Record), DistanceKm: h.DistanceKm})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	if err := report.WriteGeoJSON(w, s.reg.Entities()); err != nil {
		zap.L().Error("geojson export failed", zap.Error(err))
	}
}

// urlParam returns a decoded route parameter. chi routes on RawPath when it
// is set, so only then is the parameter still escaped.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func parseAttribute(w http.ResponseWriter, s string) (temple.Attribute, bool) {
	attr, err := temple.ParseAttribute(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown attribute "+strconv.Quote(s))
		return "", false
	}
	return attr, true
}

func parseIndexed(w http.ResponseWriter, s string) (temple.Attribute, bool) {
	attr, ok := parseAttribute(w, s)
	if !ok {
		return "", false
	}
	if !attr.IsCategorical() {
		writeError(w, http.StatusNotFound, "attribute "+strconv.Quote(string(attr))+" is not indexed")
		return "", false
	}
	return attr, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
