// Package session holds the process-wide authentication state.
//
// A Store starts in the loading state, hydrates itself once from the
// stored token, and publishes every change to its subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/naveenspark/langgpt/internal/storage"
	"github.com/naveenspark/langgpt/pkg/client"
	"github.com/naveenspark/langgpt/pkg/domain"
)

// State is an immutable snapshot of the session.
// Authenticated is true exactly when User is non-nil.
type State struct {
	Authenticated bool
	User          *domain.UserProfile
	Loading       bool
	// Expired is set when the backend rejected the token mid-session and
	// cleared by the next login or logout.
	Expired bool
}

// API is the part of the backend the session needs.
type API interface {
	Login(ctx context.Context, username, password string) (*client.LoginResponse, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.RegisterResponse, error)
	Me(ctx context.Context) (*domain.UserProfile, error)
	Profile(ctx context.Context, token string) (*domain.UserProfile, error)
}

// Store owns the session state. It is safe for concurrent use.
type Store struct {
	api    API
	tokens storage.Store
	log    *zap.Logger

	bootOnce sync.Once

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// New creates a store in the loading state. Call Bootstrap to leave it.
func New(api API, tokens storage.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		api:    api,
		tokens: tokens,
		log:    log.Named("session"),
		state:  State{Loading: true},
		subs:   map[int]func(State){},
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every future state change. fn is called
// outside the store's lock, on whichever goroutine made the change.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// set applies mutate under the lock and publishes the result.
func (s *Store) set(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Bootstrap hydrates the session from a stored token. It runs at most
// once per store; later calls return immediately.
func (s *Store) Bootstrap(ctx context.Context) {
	s.bootOnce.Do(func() { s.bootstrap(ctx) })
}

func (s *Store) bootstrap(ctx context.Context) {
	if !storage.Has(s.tokens, storage.TokenKey) {
		s.log.Info("bootstrap: no stored token")
		s.set(func(st *State) { st.Loading = false })
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Info("bootstrap: stored token rejected", zap.Error(err))
		s.removeToken()
		s.set(func(st *State) {
			*st = State{}
		})
		return
	}

	s.log.Info("bootstrap: session restored", zap.String("user", user.Username))
	s.set(func(st *State) {
		*st = State{Authenticated: true, User: user}
	})
}

// Login exchanges credentials for a token and loads the profile. It
// reports success only; on failure the session and the stored token are
// left as they were. The new token is checked before it replaces the
// stored one.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.log.Info("login failed", zap.String("user", username), zap.Error(err))
		return false
	}

	user, err := s.api.Profile(ctx, resp.AccessToken)
	if err != nil {
		s.log.Info("login: profile fetch failed", zap.String("user", username), zap.Error(err))
		return false
	}
	if err := s.tokens.Set(storage.TokenKey, resp.AccessToken); err != nil {
		s.log.Error("login: persist token", zap.Error(err))
		return false
	}

	s.log.Info("logged in", zap.String("user", user.Username))
	s.set(func(st *State) {
		*st = State{Authenticated: true, User: user}
	})
	return true
}

// Logout forgets the token and the user. It never touches the network.
func (s *Store) Logout() {
	s.removeToken()
	s.log.Info("logged out")
	s.set(func(st *State) {
		*st = State{}
	})
}

// Expire is Logout for a token the backend no longer accepts. During
// bootstrap or while already logged out it only drops the token.
func (s *Store) Expire() {
	s.removeToken()

	s.mu.Lock()
	active := s.state.Authenticated && !s.state.Loading
	s.mu.Unlock()
	if !active {
		return
	}

	s.log.Info("session expired")
	s.set(func(st *State) {
		*st = State{Expired: true}
	})
}

// Register reports whether the backend accepted the account. It never
// logs the user in.
func (s *Store) Register(ctx context.Context, username, email, password string) bool {
	return s.RegisterErr(ctx, username, email, password) == nil
}

// RegisterErr is Register returning the backend's error, so callers can
// show its detail message.
func (s *Store) RegisterErr(ctx context.Context, username, email, password string) error {
	_, err := s.api.Register(ctx, client.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		s.log.Info("register failed", zap.String("user", username), zap.Error(err))
		return fmt.Errorf("session.Register: %w", err)
	}
	s.log.Info("registered", zap.String("user", username))
	return nil
}

// ErrNoExpiry is returned by TokenExpiry when the token carries no exp
// claim or is not a JWT.
var ErrNoExpiry = errors.New("token has no readable expiry")

// TokenExpiry reads the exp claim of the stored token without verifying
// its signature. The backend stays the authority on validity.
func (s *Store) TokenExpiry() (time.Time, error) {
	tok, err := s.tokens.Get(storage.TokenKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("session.TokenExpiry: %w", err)
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, ErrNoExpiry
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

func (s *Store) removeToken() {
	if err := s.tokens.Remove(storage.TokenKey); err != nil {
		s.log.Warn("remove token", zap.Error(err))
	}
}
