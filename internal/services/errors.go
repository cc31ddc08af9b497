package services

import (
	"errors"
	"fmt"
)

var (
	ErrPromptNotFound     = errors.New("prompt not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// WriteError marks the failure of a structurally required write step. Phase
// names the step so the API can tell the caller which part of the operation
// died; best-effort sub-steps never produce one of these, they end up in a
// WriteReport instead.
type WriteError struct {
	Phase string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
