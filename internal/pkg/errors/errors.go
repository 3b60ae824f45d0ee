package errors

import (
	"errors"
	"fmt"
)

const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeDeliveryFailed = "DELIVERY_FAILED"
)

type Error struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

func InvalidInput(field, message string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Field: field, Message: message}
}

func DeliveryFailed(message string) *Error {
	return &Error{Code: ErrCodeDeliveryFailed, Message: message}
}

// Code returns the code of the first *Error in err's chain, or "".
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsInvalidInput(err error) bool {
	return Code(err) == ErrCodeInvalidInput
}
