package service

import (
	"errors"
	"fmt"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func WrapError(domainError *DomainError, err error) error {
	return &DomainError{
		Code:    domainError.Code,
		Message: domainError.Message,
		Err:     err,
	}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is сравнивает по коду, чтобы errors.Is(WrapError(ErrX, err), ErrX) работал
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

var (
	// NOT_FOUND
	ErrPrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "pull request not found",
	}
	ErrRuleNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "review rule not found",
	}
	ErrUserNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "user not found",
	}

	// PR_EXISTS
	ErrPrExists = &DomainError{
		Code:    "PR_EXISTS",
		Message: "pull request is already tracked",
	}

	// INVALID_INPUT
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}

	// INVALID_PAYLOAD
	ErrInvalidPayload = &DomainError{
		Code:    "INVALID_PAYLOAD",
		Message: "malformed webhook payload",
	}

	// UPSTREAM_UNAVAILABLE
	ErrUpstreamUnavailable = &DomainError{
		Code:    "UPSTREAM_UNAVAILABLE",
		Message: "github api unavailable",
	}

	// UNKNOWN_COMMAND
	ErrUnknownIntent = &DomainError{
		Code:    "UNKNOWN_COMMAND",
		Message: "command has no handler",
	}

	// QUEUE_FULL
	ErrQueueFull = &DomainError{
		Code:    "QUEUE_FULL",
		Message: "event queue is full, retry later",
	}

	// UNAUTHORIZED
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "webhook signature verification failed",
	}
)
