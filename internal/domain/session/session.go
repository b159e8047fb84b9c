package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/ecofinds/internal/auth"
	"github.com/example/ecofinds/internal/infrastructure/journal"
)

const AggregateType = "Session"

var (
	ErrNotReady           = errors.New("identity store is not ready")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("email is required")
	ErrInvalidUsername    = errors.New("username is required")
)

// User is a marketplace principal. Users are immutable once created: there is
// no edit path, and listings embed a snapshot of their seller rather than a
// live reference.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Source supplies the seed principal set consumed once by Load.
type Source interface {
	Users(ctx context.Context) ([]User, error)
}

// Store holds the current session's principal and the set of known principals.
// Consumers must treat the pre-ready window as "unknown", not "logged out".
type Store struct {
	mu        sync.RWMutex
	current   *User
	users     []User
	ready     bool
	journal   journal.Recorder
	listeners []func(*User)
}

func NewStore(rec journal.Recorder) *Store {
	return &Store{journal: rec}
}

// Load populates the known principals from the seed source and flips the
// store to ready. A canceled context leaves the store untouched, so a load
// abandoned on early teardown is a safe no-op.
func (s *Store) Load(ctx context.Context, src Source) error {
	users, err := src.Users(ctx)
	if err != nil {
		return fmt.Errorf("load principals: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.users = users
	s.ready = true
	s.mu.Unlock()

	log.Printf("[Session] Loaded %d principals", len(users))
	return nil
}

// Ready reports whether the initial load has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Current returns the authenticated principal, if any.
func (s *Store) Current() (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	u := *s.current
	return &u, true
}

// GetByID looks up a known principal by id.
func (s *Store) GetByID(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}

// Users returns a copy of the known principal set.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// OnSessionChange registers an observer invoked after every session
// transition with the new current principal (nil when the session ended).
// The dependency is one-way: observers read the session, never the reverse.
func (s *Store) OnSessionChange(fn func(*User)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Login authenticates by exact email match among known principals. The
// password must be present but is not compared. On no match the session is
// left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*User, error) {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return nil, ErrNotReady
	}

	var match *User
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			match = &u
			break
		}
	}
	if match == nil {
		s.mu.Unlock()
		return nil, ErrInvalidCredentials
	}
	s.current = match
	s.mu.Unlock()

	event := UserLoggedIn{
		UserID:   match.ID,
		Email:    match.Email,
		LoggedAt: time.Now(),
	}
	if _, err := s.journal.Append(ctx, match.ID, AggregateType, EventUserLoggedIn, event); err != nil {
		log.Printf("[Session] Failed to record login for %s: %v", match.ID, err)
	}

	s.notify(match)
	u := *match
	return &u, nil
}

// Logout ends the session unconditionally. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		event := UserLoggedOut{UserID: prev.ID, LoggedAt: time.Now()}
		if _, err := s.journal.Append(ctx, prev.ID, AggregateType, EventUserLoggedOut, event); err != nil {
			log.Printf("[Session] Failed to record logout for %s: %v", prev.ID, err)
		}
	}

	s.notify(nil)
}

// SignUp synthesizes a new principal, appends it to the known set and starts
// a session as it. Email collisions are not checked. The password is hashed
// for storage hygiene only; Login never compares it.
func (s *Store) SignUp(ctx context.Context, username, email, password string) (*User, error) {
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}

	passwordHash := ""
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	s.mu.Lock()
	newUser := User{
		ID:           newUserID(s.users),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users = append(s.users, newUser)
	s.current = &newUser
	s.mu.Unlock()

	event := UserSignedUp{
		UserID:   newUser.ID,
		Username: username,
		Email:    email,
		SignedAt: newUser.CreatedAt,
	}
	if _, err := s.journal.Append(ctx, newUser.ID, AggregateType, EventUserSignedUp, event); err != nil {
		log.Printf("[Session] Failed to record signup for %s: %v", newUser.ID, err)
	}

	s.notify(&newUser)
	u := newUser
	return &u, nil
}

func (s *Store) notify(u *User) {
	s.mu.RLock()
	listeners := make([]func(*User), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		if u == nil {
			fn(nil)
			continue
		}
		cp := *u
		fn(&cp)
	}
}

// newUserID derives a user-<millis> id, bumping past collisions so that ids
// stay unique even when signups land in the same millisecond.
func newUserID(existing []User) string {
	ms := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("user-%d", ms)
		if !userIDTaken(existing, id) {
			return id
		}
		ms++
	}
}

func userIDTaken(users []User, id string) bool {
	for i := range users {
		if users[i].ID == id {
			return true
		}
	}
	return false
}
