// Package session holds per-user dialog state and the registry that owns
// it. All operations on one user's session are causally ordered by the
// arrival of that user's messages, so the session itself is unguarded;
// only the registry map needs locking.
package session

import (
	"sync"
	"time"

	"poezdka/internal/cart"
)

// Awaiting names the single active wait-state of a session. Absence of a
// wait-state (AwaitNone) means free-text intent routing applies.
type Awaiting string

const (
	AwaitNone                 Awaiting = "none"
	AwaitDestinationSelection Awaiting = "destination_selection"
	AwaitDateSelection        Awaiting = "date_selection"
	AwaitScenarioSelection    Awaiting = "scenario_selection"
	AwaitPromoSelection       Awaiting = "promo_selection"
	AwaitScenarioConfirmation Awaiting = "scenario_confirmation"
	AwaitOrderConfirmation    Awaiting = "order_confirmation"
)

// Placeholder passenger identity: there is no real identity collection
// flow.
const (
	DefaultPassengerName  = "Миша Лукин"
	DefaultPassengerEmail = "misha@example.com"
)

// Session is one user's dialog state.
type Session struct {
	UserID         int64
	Destination    string
	DateText       string
	Cart           cart.Cart
	PassengerName  string
	PassengerEmail string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	awaiting      Awaiting
	bookingNumber string
}

// NewSession creates a fresh session for the user.
func NewSession(userID int64) *Session {
	now := time.Now()
	return &Session{
		UserID:         userID,
		PassengerName:  DefaultPassengerName,
		PassengerEmail: DefaultPassengerEmail,
		CreatedAt:      now,
		UpdatedAt:      now,
		awaiting:       AwaitNone,
	}
}

// Awaiting returns the active wait-state.
func (s *Session) Awaiting() Awaiting { return s.awaiting }

// SetAwaiting replaces the wait-state. The single field guarantees that
// exactly one wait-state is active at a time.
func (s *Session) SetAwaiting(a Awaiting) {
	s.awaiting = a
	s.UpdatedAt = time.Now()
}

// BookingNumber returns the session's booking number, generating it via
// gen on first call. Generation is idempotent: once assigned the number
// is immutable until the session is reset.
func (s *Session) BookingNumber(gen func() string) string {
	if s.bookingNumber == "" {
		s.bookingNumber = gen()
	}
	return s.bookingNumber
}

// HasBookingNumber reports whether a booking number has been assigned.
func (s *Session) HasBookingNumber() bool { return s.bookingNumber != "" }

// Reset returns the session to its initial wait-state. With clearCart the
// whole cart empties; otherwise promotions survive per the cart's
// Clear(preservePromotions) contract. Selections and the booking number
// always clear — committed order facts stay queryable via storage, not
// via the live session.
func (s *Session) Reset(clearCart bool) {
	s.Destination = ""
	s.DateText = ""
	s.awaiting = AwaitNone
	s.bookingNumber = ""
	s.Cart.Clear(!clearCart)
	s.Cart.SetScenario("")
	s.UpdatedAt = time.Now()
}

// Registry owns all sessions, keyed by user id. Creation on first contact
// is atomic so a racing first message cannot produce two session objects.
type Registry struct {
	mu          sync.RWMutex
	m           map[int64]*Session
	idleTimeout time.Duration
}

// NewRegistry creates a registry. Sessions idle longer than idleTimeout
// are removable via Cleanup; a non-positive timeout defaults to 24h.
func NewRegistry(idleTimeout time.Duration) *Registry {
	if idleTimeout <= 0 {
		idleTimeout = 24 * time.Hour
	}
	return &Registry{
		m:           make(map[int64]*Session),
		idleTimeout: idleTimeout,
	}
}

// Get returns the session for the user, nil when absent.
func (r *Registry) Get(userID int64) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.m[userID]
}

// GetOrCreate returns the existing session or atomically creates one.
func (r *Registry) GetOrCreate(userID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.m[userID]; ok {
		return s
	}
	s := NewSession(userID)
	r.m[userID] = s
	return s
}

// Delete removes a session.
func (r *Registry) Delete(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, userID)
}

// Cleanup removes sessions idle past the timeout and returns how many
// were dropped.
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	cutoff := time.Now().Add(-r.idleTimeout)
	for id, s := range r.m {
		if s.UpdatedAt.Before(cutoff) {
			delete(r.m, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
