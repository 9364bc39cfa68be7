package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidCode         = errors.New("invalid or expired verification code")
	ErrEmailDelivery       = errors.New("failed to send email")
	ErrAlreadyUnsubscribed = errors.New("already unsubscribed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAdminExists         = errors.New("admin already exists")
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrImageTooLarge       = errors.New("image too large")
	ErrImageSignature      = errors.New("file content does not match its declared type")
	ErrImageHost           = errors.New("image host unavailable")

	ErrPostNotFound         = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound      = fmt.Errorf("comment %w", ErrNotFound)
	ErrSubscriptionNotFound = fmt.Errorf("subscription %w", ErrNotFound)
	ErrAdminNotFound        = fmt.Errorf("admin %w", ErrNotFound)
)

// validationError keeps the user-facing message while matching ErrValidation.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func notFound(err error, notFoundErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return fmt.Errorf("query: %w", err)
}

func invalid(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}
