// Package apitest runs an in-process fake of the LangGPT backend for tests.
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

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/naveenspark/langgpt/pkg/domain"
)

// SigningKey signs the fake backend's access tokens.
var SigningKey = []byte("apitest-secret")

// Request is one call observed by the fake backend.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
}

type account struct {
	id       int64
	username string
	email    string
	password string
}

type failure struct {
	status int
	body   string
}

// Server is a fake backend bound to an httptest.Server.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	records  map[string][]domain.TranslationRecord
	requests []Request
	failures map[string]failure
	nextID   int64
	tokenTTL time.Duration
	delay    time.Duration
}

// New starts a fake backend that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		records:  map[string][]domain.TranslationRecord{},
		failures: map[string]failure{},
		tokenTTL: time.Hour,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Post("/login", s.handleLogin)
	r.Post("/register", s.handleRegister)
	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/api/me", s.handleMe)
		r.Post("/translate", s.handleTranslate)
		r.Get("/history", s.handleHistory)
	})
	return r
}

// AddUser creates an account directly.
func (s *Server) AddUser(username, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(username, email, password)
}

func (s *Server) addLocked(username, email, password string) *account {
	s.nextID++
	a := &account{id: s.nextID, username: username, email: email, password: password}
	s.accounts[username] = a
	return a
}

// IssueToken mints a valid token for an existing user.
func (s *Server) IssueToken(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(username)
}

func (s *Server) issueLocked(username string) string {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		ID:        strconv.Itoa(len(s.tokens) + 1),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey)
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	s.tokens[tok] = username
	return tok
}

// RevokeAll invalidates every issued token.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// FailNext makes the next request to path answer with status and body.
func (s *Server) FailNext(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: body}
}

// SetDelay slows every response down, for observing in-flight states.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// AddRecord stores a history entry for username.
func (s *Server) AddRecord(username string, rec domain.TranslationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[username] = append(s.records[username], rec)
}

// Requests returns a copy of every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request to path.
func (s *Server) LastRequest(path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Path == path {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		f, failing := s.failures[r.URL.Path]
		delete(s.failures, r.URL.Path)
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		username, valid := s.tokens[tok]
		s.mu.Unlock()
		if !ok || !valid {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		r.Header.Set("X-Test-User", username)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	s.mu.Lock()
	a, ok := s.accounts[req.Username]
	if !ok || a.password != req.Password {
		s.mu.Unlock()
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	tok := s.issueLocked(a.username)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{
				"loc":  []string{"body", "email"},
				"msg":  "value is not a valid email address",
				"type": "value_error",
			}},
		})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.accounts[req.Username]; taken {
		writeDetail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	s.addLocked(req.Username, req.Email, req.Password)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.accounts[r.Header.Get("X-Test-User")]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, domain.UserProfile{ID: a.id, Username: a.username, Email: a.email})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string `json:"text"`
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid direction")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeDetail(w, http.StatusBadRequest, "Text is empty")
		return
	}
	tag := "ja"
	if dir == domain.JaToKo {
		tag = "ko"
	}
	res := domain.TranslationResult{
		Original:   req.Text,
		Translated: fmt.Sprintf("[%s draft] %s", tag, req.Text),
		Reviewed:   fmt.Sprintf("[%s] %s", tag, req.Text),
	}

	user := r.Header.Get("X-Test-User")
	s.mu.Lock()
	s.nextID++
	s.records[user] = append(s.records[user], domain.TranslationRecord{
		ID:             s.nextID,
		OriginalText:   res.Original,
		TranslatedText: res.Translated,
		ReviewedText:   res.Reviewed,
		CreatedAt:      domain.Timestamp{Time: time.Now().UTC()},
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeDetail(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	s.mu.Lock()
	recs := s.records[r.Header.Get("X-Test-User")]
	out := make([]domain.TranslationRecord, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
