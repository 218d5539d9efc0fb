package monitor

import (
	"errors"
	"fmt"

	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

type ValidationCode string

const (
	CodeMalformedFormat     ValidationCode = "malformed_format"
	CodeOutOfPlausibleRange ValidationCode = "out_of_plausible_range"
	CodeOutOfInputRange     ValidationCode = "out_of_input_range"
	CodeUnsupportedSignal   ValidationCode = "unsupported_signal"
	CodeInvalidValue        ValidationCode = "invalid_value"
)

// ValidationError is bad input. It is shown to the user and never reaches storage.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StorageError aborts the workflow it happens in. Nothing is assumed committed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DeliveryError is one failed notification attempt for one recipient.
type DeliveryError struct {
	Recipient models.Recipient
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to user %d <%s> failed: %v", e.Recipient.UserID, e.Recipient.Email, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

var (
	ErrNoTransport        = errors.New("notification transport not configured")
	ErrNoRecipientAddress = errors.New("recipient has no email address")
	ErrServiceUnavailable = errors.New("service not available")
)

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsStorageError(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
