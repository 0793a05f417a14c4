// Package plextest provides an in-memory stand-in for the plex.tv pin and
// user endpoints.
package plextest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

type pin struct {
	code   string
	token  string
	checks int
}

// Server fakes plex.tv. Pins are approved explicitly with Approve or
// automatically after a number of checks with AutoApprove.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	nextID      int64
	pins        map[int64]*pin
	tokens      map[string]bool
	userStatus  int
	autoAfter   int
	autoToken   string
	pinRequests int
	checks      int
}

// NewServer starts a fake closed when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextID: 1000,
		pins:   make(map[int64]*pin),
		tokens: make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v2/pins", s.handleCreatePin)
	mux.HandleFunc("GET /api/v2/pins/{id}", s.handleCheckPin)
	mux.HandleFunc("GET /api/v2/user", s.handleUser)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

// Approve attaches token to the pin, as if the user approved it.
func (s *Server) Approve(id int64, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pins[id]; ok {
		p.token = token
		s.tokens[token] = true
	}
}

// AutoApprove approves every pin with token once it has been checked n
// times without approval.
func (s *Server) AutoApprove(n int, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoAfter = n
	s.autoToken = token
}

// Revoke makes the user endpoint answer 401 for token.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
}

// SetUserStatus forces the user endpoint to answer with code. Zero
// restores normal behavior.
func (s *Server) SetUserStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userStatus = code
}

// LastPin returns the most recently issued pin.
func (s *Server) LastPin() (int64, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pins[s.nextID]
	if !ok {
		return 0, ""
	}

	return s.nextID, p.code
}

// PinRequests returns how many pins have been issued.
func (s *Server) PinRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pinRequests
}

// Checks returns how many pin checks have been served.
func (s *Server) Checks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.checks
}

func hasIdentity(r *http.Request, withProduct bool) bool {
	if r.Header.Get("X-Plex-Client-Identifier") == "" {
		return false
	}

	return !withProduct || r.Header.Get("X-Plex-Product") != ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleCreatePin(w http.ResponseWriter, r *http.Request) {
	if !hasIdentity(r, true) {
		http.Error(w, "missing identity", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil || r.PostForm.Get("strong") != "true" {
		http.Error(w, "strong pins only", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	p := &pin{code: fmt.Sprintf("CODE%d", id)}
	s.pins[id] = p
	s.pinRequests++
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "code": p.code, "authToken": nil})
}

func (s *Server) handleCheckPin(w http.ResponseWriter, r *http.Request) {
	if !hasIdentity(r, false) {
		http.Error(w, "missing identity", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.checks++

	p, ok := s.pins[id]
	if !ok || p.code != r.Header.Get("code") {
		http.NotFound(w, r)
		return
	}

	if p.token == "" && s.autoToken != "" {
		p.checks++
		if p.checks > s.autoAfter {
			p.token = s.autoToken
			s.tokens[p.token] = true
		}
	}

	var token any
	if p.token != "" {
		token = p.token
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "code": p.code, "authToken": token})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	if !hasIdentity(r, true) {
		http.Error(w, "missing identity", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	status := s.userStatus
	valid := s.tokens[r.Header.Get("X-Plex-Token")]
	s.mu.Unlock()

	switch {
	case status != 0:
		w.WriteHeader(status)
	case valid:
		writeJSON(w, http.StatusOK, map[string]any{"username": "plexuser"})
	default:
		w.WriteHeader(http.StatusUnauthorized)
	}
}
