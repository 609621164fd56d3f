// Package session holds the logged-in student's identity and token between
// command runs. The backend remains the source of truth; the stored copy is a
// cache that is cleared on logout or whenever the backend rejects the token.
package session

import (
	"errors"
	"time"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/pkg/auth"
)

// ErrNoSession is returned by Load when nobody is logged in
var ErrNoSession = errors.New("no active session")

// Session is an immutable snapshot of the authenticated student
type Session struct {
	Token   string         `json:"token"`
	Student models.Student `json:"student"`
	SavedAt time.Time      `json:"savedAt"`
}

// New creates a session for a freshly authenticated student
func New(token string, student models.Student) Session {
	return Session{Token: token, Student: student, SavedAt: time.Now().UTC()}
}

// StudentID is the identifier that scopes eligibility and submission requests
func (s Session) StudentID() string {
	return s.Student.ID
}

// Valid reports whether the session carries both a token and an identity
func (s Session) Valid() bool {
	return s.Token != "" && s.Student.ID != ""
}

// Expired reports whether the token's exp claim is in the past. Tokens
// without a readable exp are treated as live and left to the backend.
func (s Session) Expired(now time.Time) bool {
	exp, ok := auth.TokenExpiry(s.Token)
	return ok && !now.Before(exp)
}

// WithStudent returns a copy with the profile fields merged in
func (s Session) WithStudent(update models.Student) Session {
	s.Student = s.Student.Merge(update)
	s.SavedAt = time.Now().UTC()
	return s
}

// Store persists the session. Save and Clear are the only ways to change it.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// TokenSource adapts a Store to the HTTP client's token lookup. An absent or
// expired token yields "" so the request is never sent.
type TokenSource struct {
	Store Store
	Now   func() time.Time
}

// Token returns the bearer token to attach, or "" when there is none
func (t TokenSource) Token() (string, error) {
	s, err := t.Store.Load()
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	if !s.Valid() || s.Expired(now()) {
		return "", nil
	}
	return s.Token, nil
}
