// Package apitest provides an in-memory fake of the TeamTasks REST API for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/ruth8415/TeamTasks/models"
)

type account struct {
	password string
	user     models.User
}

// Server is a fake API backed by slices. Exported fields may be seeded before
// requests are made; lock Mu when touching them from a test while requests run.
type Server struct {
	*httptest.Server

	Mu       sync.Mutex
	Teams    []models.Team
	Members  map[int64][]models.Member
	Projects []models.Project
	Tasks    []models.Task
	Comments []models.Comment

	// Requests records "METHOD /path?query" for every request received.
	Requests []string
	// Delay is applied per path before responding.
	Delay map[string]time.Duration

	accounts map[string]account
	tokens   map[string]models.User
	failures map[string][]int
	nextID   int64
}

// New starts a fake API and closes it when the test ends. All routes live under /api.
func New(t testing.TB) *Server {
	s := &Server{
		Members:  make(map[int64][]models.Member),
		Delay:    make(map[string]time.Duration),
		accounts: make(map[string]account),
		tokens:   make(map[string]models.User),
		failures: make(map[string][]int),
		nextID:   100,
	}

	r := mux.NewRouter()
	r.Use(s.record)
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireAuth)
	authed.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)

	authed.HandleFunc("/teams", s.listTeams).Methods(http.MethodGet)
	authed.HandleFunc("/teams", s.createTeam).Methods(http.MethodPost)
	authed.HandleFunc("/teams/{id:[0-9]+}", s.updateTeam).Methods(http.MethodPatch)
	authed.HandleFunc("/teams/{id:[0-9]+}", s.deleteTeam).Methods(http.MethodDelete)
	authed.HandleFunc("/teams/{id:[0-9]+}/members", s.listMembers).Methods(http.MethodGet)
	authed.HandleFunc("/teams/{id:[0-9]+}/members", s.addMember).Methods(http.MethodPost)
	authed.HandleFunc("/teams/{id:[0-9]+}/members/{userId:[0-9]+}", s.removeMember).Methods(http.MethodDelete)

	authed.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	authed.HandleFunc("/projects", s.createProject).Methods(http.MethodPost)
	authed.HandleFunc("/projects/{id:[0-9]+}", s.updateProject).Methods(http.MethodPatch)
	authed.HandleFunc("/projects/{id:[0-9]+}", s.deleteProject).Methods(http.MethodDelete)

	authed.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	authed.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	authed.HandleFunc("/tasks/{id:[0-9]+}", s.updateTask).Methods(http.MethodPatch)
	authed.HandleFunc("/tasks/{id:[0-9]+}", s.deleteTask).Methods(http.MethodDelete)

	authed.HandleFunc("/comments", s.listComments).Methods(http.MethodGet)
	authed.HandleFunc("/comments", s.createComment).Methods(http.MethodPost)
	authed.HandleFunc("/comments/{id:[0-9]+}", s.deleteComment).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root a client should be configured with.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// AddUser registers an account and returns a valid bearer token for it.
func (s *Server) AddUser(name, email, password string) string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	user := models.User{ID: s.id(), Name: name, Email: email}
	s.accounts[email] = account{password: password, user: user}
	return s.issueToken(user)
}

// FailNext makes the next requests matching "METHOD /api/path" return the given statuses in order.
func (s *Server) FailNext(route string, statuses ...int) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.failures[route] = append(s.failures[route], statuses...)
}

// RequestLog returns a copy of the recorded requests.
func (s *Server) RequestLog() []string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return append([]string(nil), s.Requests...)
}

// Count returns how many recorded requests start with prefix.
func (s *Server) Count(prefix string) int {
	n := 0
	for _, r := range s.RequestLog() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// caller holds s.Mu
func (s *Server) issueToken(user models.User) string {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    time.Now().Add(time.Hour).Unix(),
		"jti":    strconv.FormatInt(s.id(), 10),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("apitest"))
	s.tokens[token] = user
	return token
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			entry += "?" + r.URL.RawQuery
		}

		s.Mu.Lock()
		s.Requests = append(s.Requests, entry)
		delay := s.Delay[r.URL.Path]
		route := r.Method + " " + r.URL.Path
		status := 0
		if queued := s.failures[route]; len(queued) > 0 {
			status = queued[0]
			s.failures[route] = queued[1:]
		}
		s.Mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if status != 0 {
			writeError(w, status, fmt.Sprintf("injected failure %d", status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.Mu.Lock()
		_, ok := s.tokens[token]
		s.Mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func pathID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	return id
}

func queryID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return id
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
