// Package fakeqcamap provides an in-memory fake of the coding service's REST
// API for tests.
//
// The server holds a single project with one research question. Seed it with
// AddDocument, AddCategory and AddMarker, then point a connection at URL.
//
// To inject failures, register a Failure that matches requests by method and
// route and answers them with an error status instead of the normal
// response. Every request is recorded, and the server tracks how many
// requests per route were in flight at the same time, so tests can tell
// sequential writes from concurrent ones.
package fakeqcamap

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/qcatools/qcamap.go/internal/codec"
	"github.com/qcatools/qcamap.go/pkg/models"
)

// Route names, usable in Failure.Route and MaxInFlight.
const (
	RouteListDocuments  = "listDocuments"
	RouteListCategories = "listCategories"
	RouteCreateCategory = "createCategory"
	RouteUpdateCategory = "updateCategory"
	RouteListMarkers    = "listMarkers"
	RouteCreateMarker   = "createMarker"
	RouteUpdateMarker   = "updateMarker"
	RouteDeleteMarker   = "deleteMarker"
)

// Failure answers matching requests with Status.
type Failure struct {
	// Route is one of the Route* constants.
	Route string
	// Matcher optionally narrows the match by path variables (p, rq, d, c, m).
	Matcher func(vars map[string]string) bool
	Status  int
	Message string
	// Times limits how often the failure triggers. Zero means always.
	Times int
}

// Request is a recorded incoming request.
type Request struct {
	Route  string
	Method string
	Path   string
	Body   []byte
}

type Server struct {
	ProjectID          int64
	ResearchQuestionID int64

	mu         sync.Mutex
	nextID     int64
	documents  []models.Record
	categories []models.Record
	markers    map[int64][]models.Record
	failures   []*Failure
	requests   []Request
	inFlight   map[string]int
	maxFlight  map[string]int
	delay      time.Duration

	codec  *codec.JSON
	router *mux.Router
	http   *httptest.Server
}

// New creates a fake service for one project. Call Start to serve it.
func New(projectID, researchQuestionID int64) *Server {
	s := &Server{
		ProjectID:          projectID,
		ResearchQuestionID: researchQuestionID,
		nextID:             1000,
		markers:            make(map[int64][]models.Record),
		inFlight:           make(map[string]int),
		maxFlight:          make(map[string]int),
		codec:              codec.NewJSON(),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1/projects/{p:[0-9]+}").Subrouter()
	api.Use(s.middleware)
	api.HandleFunc("/contents", s.handleListDocuments).Methods(http.MethodGet).Name(RouteListDocuments)

	rq := api.PathPrefix("/researchQuestions/{rq:[0-9]+}").Subrouter()
	rq.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet).Name(RouteListCategories)
	rq.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost).Name(RouteCreateCategory)
	rq.HandleFunc("/categories/{c:[0-9]+}", s.handleUpdateCategory).Methods(http.MethodPut).Name(RouteUpdateCategory)
	rq.HandleFunc("/contents/{d:[0-9]+}/markers", s.handleListMarkers).Methods(http.MethodGet).Name(RouteListMarkers)
	rq.HandleFunc("/contents/{d:[0-9]+}/markers", s.handleCreateMarker).Methods(http.MethodPost).Name(RouteCreateMarker)
	rq.HandleFunc("/contents/{d:[0-9]+}/markers/{m:[0-9]+}", s.handleUpdateMarker).Methods(http.MethodPut).Name(RouteUpdateMarker)
	rq.HandleFunc("/contents/{d:[0-9]+}/markers/{m:[0-9]+}", s.handleDeleteMarker).Methods(http.MethodDelete).Name(RouteDeleteMarker)
	s.router = r

	return s
}

// Start serves the fake on a random local port.
func (s *Server) Start() *Server {
	s.http = httptest.NewServer(s.router)
	return s
}

func (s *Server) Close() {
	if s.http != nil {
		s.http.Close()
	}
}

// URL is the base URL of the running server.
func (s *Server) URL() string {
	return s.http.URL
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// SetDelay makes every request take at least d.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Server) AddFailure(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, &f)
}

// AddDocument stores a document record and returns its id.
// A record without an id gets a fresh one.
func (s *Server) AddDocument(rec models.Record) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec = s.assignID(rec)
	rec[models.FieldProjectID] = s.ProjectID
	s.documents = append(s.documents, rec)
	return rec.Int64(models.FieldID)
}

func (s *Server) AddCategory(rec models.Record) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec = s.assignID(rec)
	rec[models.FieldResearchQuestionID] = s.ResearchQuestionID
	s.categories = append(s.categories, rec)
	return rec.Int64(models.FieldID)
}

func (s *Server) AddMarker(documentID int64, rec models.Record) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec = s.assignID(rec)
	rec[models.FieldContentDefinitionID] = documentID
	s.markers[documentID] = append(s.markers[documentID], rec)
	return rec.Int64(models.FieldID)
}

// Category returns a copy of the stored category, or nil.
func (s *Server) Category(id int64) models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.categories, id); i >= 0 {
		return s.categories[i].Clone()
	}
	return nil
}

func (s *Server) Categories() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.categories)
}

func (s *Server) Markers(documentID int64) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.markers[documentID])
}

func (s *Server) Marker(documentID, id int64) models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.markers[documentID], id); i >= 0 {
		return s.markers[documentID][i].Clone()
	}
	return nil
}

// Requests returns the recorded requests, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns recorded requests for one route.
func (s *Server) RequestsTo(route string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// MaxInFlight is the highest number of simultaneous requests seen on route.
func (s *Server) MaxInFlight(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxFlight[route]
}

func (s *Server) assignID(rec models.Record) models.Record {
	rec = rec.Clone()
	if _, ok := rec.NullInt64(models.FieldID); !ok {
		s.nextID++
		rec[models.FieldID] = s.nextID
	}
	return rec
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := ""
		if cur := mux.CurrentRoute(r); cur != nil {
			route = cur.GetName()
		}
		vars := mux.Vars(r)

		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Route: route, Method: r.Method, Path: r.URL.Path, Body: body})
		s.inFlight[route]++
		if s.inFlight[route] > s.maxFlight[route] {
			s.maxFlight[route] = s.inFlight[route]
		}
		delay := s.delay
		failure := s.matchFailure(route, vars)
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.inFlight[route]--
			s.mu.Unlock()
		}()

		if delay > 0 {
			time.Sleep(delay)
		}

		if failure != nil {
			s.writeJSON(w, failure.Status, map[string]any{"message": failure.Message})
			return
		}

		if p := varInt(vars, "p"); p != s.ProjectID {
			s.writeJSON(w, http.StatusNotFound, map[string]any{"message": fmt.Sprintf("project %d not found", p)})
			return
		}
		if rq, ok := vars["rq"]; ok && rq != strconv.FormatInt(s.ResearchQuestionID, 10) {
			s.writeJSON(w, http.StatusNotFound, map[string]any{"message": "research question not found"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// matchFailure must be called with s.mu held.
func (s *Server) matchFailure(route string, vars map[string]string) *Failure {
	for _, f := range s.failures {
		if f.Route != route {
			continue
		}
		if f.Matcher != nil && !f.Matcher(vars) {
			continue
		}
		if f.Times < 0 {
			continue
		}
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				f.Times = -1
			}
		}
		return f
	}
	return nil
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	docs := cloneAll(s.documents)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cats := cloneAll(s.categories)
	s.mu.Unlock()
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Int64(models.FieldOrdering) < cats[j].Int64(models.FieldOrdering)
	})
	s.writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decode(w, r)
	if !ok {
		return
	}
	if _, hasID := rec.NullInt64(models.FieldID); hasID {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"message": "id must be null"})
		return
	}
	s.writeJSON(w, http.StatusCreated, s.Category(s.AddCategory(rec)))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decode(w, r)
	if !ok {
		return
	}
	id := varInt(mux.Vars(r), "c")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.categories, id)
	if i < 0 {
		s.writeJSON(w, http.StatusNotFound, map[string]any{"message": "category not found"})
		return
	}
	rec[models.FieldID] = id
	s.categories[i] = rec
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMarkers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Markers(varInt(mux.Vars(r), "d")))
}

func (s *Server) handleCreateMarker(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decode(w, r)
	if !ok {
		return
	}
	if _, hasID := rec.NullInt64(models.FieldID); hasID {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"message": "id must be null"})
		return
	}
	doc := varInt(mux.Vars(r), "d")
	s.writeJSON(w, http.StatusCreated, s.Marker(doc, s.AddMarker(doc, rec)))
}

func (s *Server) handleUpdateMarker(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decode(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	doc, id := varInt(vars, "d"), varInt(vars, "m")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.markers[doc], id)
	if i < 0 {
		s.writeJSON(w, http.StatusNotFound, map[string]any{"message": "marker not found"})
		return
	}
	rec[models.FieldID] = id
	s.markers[doc][i] = rec
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMarker(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doc, id := varInt(vars, "d"), varInt(vars, "m")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.markers[doc], id)
	if i < 0 {
		s.writeJSON(w, http.StatusNotFound, map[string]any{"message": "marker not found"})
		return
	}
	s.markers[doc] = append(s.markers[doc][:i], s.markers[doc][i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (models.Record, bool) {
	var rec models.Record
	if err := s.codec.NewDecoder(r.Body).Decode(&rec); err != nil || rec == nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed record"})
		return nil, false
	}
	return rec, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = s.codec.NewEncoder(w).Encode(v)
}
