package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetTokens_ConsumeIsSingleUse(t *testing.T) {
	s := NewResetTokens()
	s.Set("123456", "owner@example.com", time.Minute)

	assert.Equal(t, "owner@example.com", s.Consume("123456"))
	assert.Equal(t, "", s.Consume("123456"))
}

func TestResetTokens_PeekDoesNotConsume(t *testing.T) {
	s := NewResetTokens()
	s.Set("123456", "owner@example.com", time.Minute)

	email, ok := s.Peek("123456")
	assert.True(t, ok)
	assert.Equal(t, "owner@example.com", email)

	// Still consumable afterwards
	assert.Equal(t, "owner@example.com", s.Consume("123456"))
}

func TestResetTokens_Expiry(t *testing.T) {
	s := NewResetTokens()
	s.Set("123456", "owner@example.com", -time.Second)

	_, ok := s.Peek("123456")
	assert.False(t, ok)
	assert.Equal(t, "", s.Consume("123456"))
}

func TestResetTokens_UnknownToken(t *testing.T) {
	s := NewResetTokens()

	_, ok := s.Peek("000000")
	assert.False(t, ok)
	assert.Equal(t, "", s.Consume("000000"))
}
