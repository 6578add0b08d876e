package mem

import (
	"sync"
	"time"
)

type ResetTokenStore interface {
	Set(token string, accountEmail string, ttl time.Duration)

	// Consume returns the email for token if not expired and removes the
	// token. Returns "" if missing or expired.
	Consume(token string) string
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLStore is a mutex-guarded map whose entries expire.
type TTLStore[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	now  func() time.Time
}

func NewTTLStore[V any]() *TTLStore[V] {
	return &TTLStore[V]{data: make(map[string]entry[V]), now: time.Now}
}

func (s *TTLStore[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{value: value, expiresAt: s.now().Add(ttl)}
}

func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Take returns and removes the entry in one step.
func (s *TTLStore[V]) Take(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.data[key]
	if !ok {
		return zero, false
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Sweep drops expired entries and reports how many were removed.
func (s *TTLStore[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			n++
		}
	}
	return n
}

func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

type ResetTokens struct {
	store *TTLStore[string]
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{store: NewTTLStore[string]()}
}

func (r *ResetTokens) Set(token string, accountEmail string, ttl time.Duration) {
	r.store.Set(token, accountEmail, ttl)
}

func (r *ResetTokens) Consume(token string) string {
	email, _ := r.store.Take(token)
	return email
}

// Sweep is called periodically by the hosting process.
func (r *ResetTokens) Sweep() int {
	return r.store.Sweep()
}

func (r *ResetTokens) Len() int {
	return r.store.Len()
}
