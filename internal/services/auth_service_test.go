package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	s := NewAuthService(newTestDB(t))

	first, err := s.Register("alice", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "admin", first.Role)

	second, err := s.Register("bob", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "user", second.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := NewAuthService(newTestDB(t))

	_, err := s.Register("alice", "password123")
	assert.NoError(t, err)

	_, err = s.Register("alice", "different")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	s := NewAuthService(newTestDB(t))

	registered, err := s.Register("alice", "password123")
	assert.NoError(t, err)
	// The stored password is hashed, never the plaintext.
	assert.NotEqual(t, "password123", registered.Password)

	user, err := s.Login("alice", "password123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = s.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
