// Package apitest runs an in-memory stand-in for the remote quizzer API so
// client, service and CLI tests can exercise real HTTP round trips.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/quizzer/internal/client/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	BasePath          = "/quizzer/api"
	SessionCookieName = "SESSION"
)

// Route names an endpoint for counters and failure injection.
type Route string

const (
	RouteList     Route = "GET /study-sets"
	RouteCreate   Route = "POST /study-sets"
	RouteRegister Route = "POST /auth/register"
)

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	sets       []models.StudySet
	nextID     int
	counts     map[Route]int
	headers    map[Route]http.Header
	failures   map[Route][]int
	rawList    string
	gate       chan struct{}
	registered []models.RegisterRequest
}

func NewServer() *Server {
	s := &Server{
		nextID:   1,
		counts:   make(map[Route]int),
		headers:  make(map[Route]http.Header),
		failures: make(map[Route][]int),
	}

	r := mux.NewRouter()
	api := r.PathPrefix(BasePath).Subrouter()
	api.HandleFunc("/study-sets", s.listStudySets).Methods(http.MethodGet)
	api.HandleFunc("/study-sets", s.createStudySet).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the API root to hand to client.NewHTTPClient.
func (s *Server) BaseURL() string { return s.URL + BasePath }

// Close releases held requests and shuts the server down.
func (s *Server) Close() {
	s.mu.Lock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
	s.mu.Unlock()
	s.Server.Close()
}

// Seed appends study sets, assigning ids to those without one.
func (s *Server) Seed(sets ...models.StudySet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range sets {
		if set.ID == "" {
			set.ID = s.allocID()
		}
		s.sets = append(s.sets, set)
	}
}

// FailNext makes the next request to route answer with status.
// Calls queue up in order.
func (s *Server) FailNext(route Route, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], status)
}

// SetRawList serves body verbatim from GET /study-sets until reset with "".
func (s *Server) SetRawList(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawList = body
}

// HoldList blocks every GET /study-sets until the returned func is called.
// The request is counted before it blocks.
func (s *Server) HoldList() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.gate == gate {
				close(gate)
				s.gate = nil
			}
			s.mu.Unlock()
		})
	}
}

func (s *Server) Count(route Route) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[route]
}

// LastHeader returns the headers of the most recent request to route.
func (s *Server) LastHeader(route Route) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[route].Clone()
}

func (s *Server) Registered() []models.RegisterRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RegisterRequest(nil), s.registered...)
}

// track counts the request and pops a queued failure, if any.
func (s *Server) track(route Route, r *http.Request) (failStatus int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[route]++
	s.headers[route] = r.Header.Clone()
	if q := s.failures[route]; len(q) > 0 {
		failStatus, s.failures[route] = q[0], q[1:]
	}
	return failStatus
}

func (s *Server) allocID() models.ID {
	id := models.ID(strconv.Itoa(s.nextID))
	s.nextID++
	return id
}

func (s *Server) listStudySets(w http.ResponseWriter, r *http.Request) {
	status := s.track(RouteList, r)

	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	s.mu.Lock()
	raw := s.rawList
	sets := append([]models.StudySet{}, s.sets...)
	s.mu.Unlock()

	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) createStudySet(w http.ResponseWriter, r *http.Request) {
	if status := s.track(RouteCreate, r); status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	var req models.CreateStudySetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	created := models.StudySet{ID: s.allocID(), Title: req.Title}
	s.sets = append(s.sets, created)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if status := s.track(RouteRegister, r); status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.registered = append(s.registered, req)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: uuid.NewString(), Path: "/", HttpOnly: true})
	w.WriteHeader(http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
