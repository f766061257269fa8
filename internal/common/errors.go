package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	ErrNoDocuments       = errors.New("no documents to import")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrPasswordRequired  = errors.New("document requires a password")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
