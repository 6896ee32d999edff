// Package storetest runs an in-process record store for tests. It speaks the
// same REST/JSON API as the real store: Basic auth, per-user medicine lists,
// signup with duplicate checks. Knobs let a test force statuses, revoke
// credentials mid-session and inspect the calls that were made.
package storetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/gorilla/mux"
)

// Route names accepted by Override.
const (
	RouteLogin  = "login"
	RouteLogout = "logout"
	RouteStatus = "status"
	RouteSignup = "signup"
	RouteList   = "list"
	RouteCreate = "create"
	RouteUpdate = "update"
	RouteDelete = "delete"
)

const (
	DefaultUsername = "hitesh"
	DefaultPassword = "hitesh33"
)

// Call is one request as the store saw it.
type Call struct {
	Route         string
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type account struct {
	password string
	email    string
	fullName string
}

type record struct {
	owner    string
	medicine models.Medicine
}

type Store struct {
	srv *httptest.Server

	mu        sync.Mutex
	users     map[string]account
	revoked   map[string]bool
	records   map[int64]record
	nextID    int64
	overrides map[string]int
	calls     []Call
}

// New starts a store seeded with the default account. Call Close when done.
func New() *Store {
	s := &Store{
		users:     map[string]account{DefaultUsername: {password: DefaultPassword, email: "hitesh@example.com", fullName: "Hitesh"}},
		revoked:   make(map[string]bool),
		records:   make(map[int64]record),
		nextID:    1,
		overrides: make(map[string]int),
	}
	s.srv = httptest.NewServer(s.router())
	return s
}

// URL is the API base, including the /api prefix.
func (s *Store) URL() string { return s.srv.URL + "/api" }

func (s *Store) Close() { s.srv.Close() }

// Override makes every later request to route answer with status and an
// empty JSON object, bypassing the normal handler.
func (s *Store) Override(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[route] = status
}

// Revoke makes the user's credentials fail from now on.
func (s *Store) Revoke(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[username] = true
}

// Calls returns a copy of the requests received so far.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount counts requests that hit route.
func (s *Store) CallCount(route string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Route == route {
			n++
		}
	}
	return n
}

// Seed stores m for owner and returns it with its assigned ID.
func (s *Store) Seed(owner string, m models.Medicine) models.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(owner, m)
}

// Medicines returns owner's records ordered by ID.
func (s *Store) Medicines(owner string) []models.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(owner)
}

func (s *Store) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", s.requireAuth(s.handleLogin)).Methods(http.MethodPost).Name(RouteLogin)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost).Name(RouteLogout)
	api.HandleFunc("/auth/status", s.handleStatus).Methods(http.MethodGet).Name(RouteStatus)
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost).Name(RouteSignup)

	api.HandleFunc("/medicines", s.requireAuth(s.handleList)).Methods(http.MethodGet).Name(RouteList)
	api.HandleFunc("/medicines", s.requireAuth(s.handleCreate)).Methods(http.MethodPost).Name(RouteCreate)
	api.HandleFunc("/medicines/{id:[0-9]+}", s.requireAuth(s.handleUpdate)).Methods(http.MethodPut).Name(RouteUpdate)
	api.HandleFunc("/medicines/{id:[0-9]+}", s.requireAuth(s.handleDelete)).Methods(http.MethodDelete).Name(RouteDelete)

	api.Use(s.record)
	return r
}

// record logs the call and applies any override for the matched route.
func (s *Store) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Route:         name,
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		status, overridden := s.overrides[name]
		s.mu.Unlock()

		if overridden {
			writeJSON(w, status, map[string]any{})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, username string)

func (s *Store) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := s.authenticate(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication failed"})
			return
		}
		next(w, r, username)
	}
}

func (s *Store) authenticate(r *http.Request) (string, bool) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, exists := s.users[username]
	if !exists || acc.password != password || s.revoked[username] {
		return "", false
	}
	return username, true
}

func (s *Store) handleLogin(w http.ResponseWriter, _ *http.Request, username string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Login successful",
		"username":      username,
		"authenticated": true,
	})
}

func (s *Store) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (s *Store) handleStatus(w http.ResponseWriter, r *http.Request) {
	if _, _, present := r.BasicAuth(); !present {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	username, ok := s.authenticate(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "username": username})
}

func (s *Store) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.SignupResponse{Message: "Invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		writeJSON(w, http.StatusBadRequest, models.SignupResponse{Message: "Username already exists"})
		return
	}
	for _, acc := range s.users {
		if acc.email == req.Email {
			writeJSON(w, http.StatusBadRequest, models.SignupResponse{Message: "Email already exists"})
			return
		}
	}

	s.users[req.Username] = account{password: req.Password, email: req.Email, fullName: req.FullName}
	writeJSON(w, http.StatusOK, models.SignupResponse{
		Success:  true,
		Message:  "User registered successfully",
		Username: req.Username,
	})
}

func (s *Store) handleList(w http.ResponseWriter, _ *http.Request, username string) {
	s.mu.Lock()
	list := s.listLocked(username)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Store) handleCreate(w http.ResponseWriter, r *http.Request, username string) {
	var m models.Medicine
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid medicine"})
		return
	}

	s.mu.Lock()
	created := s.insertLocked(username, m)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, created)
}

func (s *Store) handleUpdate(w http.ResponseWriter, r *http.Request, username string) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var m models.Medicine
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid medicine"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, status := s.ownedLocked(id, username)
	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}
	m.ID = id
	rec.medicine = m
	s.records[id] = rec
	writeJSON(w, http.StatusOK, m)
}

func (s *Store) handleDelete(w http.ResponseWriter, r *http.Request, username string) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, status := s.ownedLocked(id, username); status != http.StatusOK {
		w.WriteHeader(status)
		return
	}
	delete(s.records, id)
	w.WriteHeader(http.StatusOK)
}

func (s *Store) ownedLocked(id int64, username string) (record, int) {
	rec, ok := s.records[id]
	if !ok {
		return record{}, http.StatusNotFound
	}
	if rec.owner != username {
		return record{}, http.StatusForbidden
	}
	return rec, http.StatusOK
}

func (s *Store) insertLocked(owner string, m models.Medicine) models.Medicine {
	m.ID = s.nextID
	s.nextID++
	s.records[m.ID] = record{owner: owner, medicine: m}
	return m
}

func (s *Store) listLocked(owner string) []models.Medicine {
	list := make([]models.Medicine, 0)
	for _, rec := range s.records {
		if rec.owner == owner {
			list = append(list, rec.medicine)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
