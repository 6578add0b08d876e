package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetTokens_ConsumeIsSingleUse(t *testing.T) {
	r := NewResetTokens()
	r.Set("tok", "a@example.com", time.Minute)

	email, ok := r.store.Get("tok")
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", email)

	assert.Equal(t, "a@example.com", r.Consume("tok"))
	assert.Equal(t, "", r.Consume("tok"))
}

func TestResetTokens_Expired(t *testing.T) {
	r := NewResetTokens()
	now := time.Now()
	r.store.now = func() time.Time { return now }
	r.Set("tok", "a@example.com", time.Minute)

	r.store.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, ok := r.store.Get("tok")
	assert.False(t, ok)
	assert.Equal(t, "", r.Consume("tok"))
	assert.Equal(t, 0, r.store.Len())
}

func TestTTLStore_Sweep(t *testing.T) {
	s := NewTTLStore[int]()
	now := time.Now()
	s.now = func() time.Time { return now }
	s.Set("short", 1, time.Second)
	s.Set("long", 2, time.Hour)

	s.now = func() time.Time { return now.Add(time.Minute) }

	assert.Equal(t, 1, s.Sweep())
	v, ok := s.Get("long")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}
