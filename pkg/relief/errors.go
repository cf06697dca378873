package relief

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrSubmission        = errors.New("transaction submission failed")
	ErrAccountNotFound   = errors.New("account not found")
	ErrQuery             = errors.New("balance query failed")
)

type InvalidCredentialError struct {
	Cause error
}

func (e *InvalidCredentialError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidCredential, e.Cause)
}

func (e *InvalidCredentialError) Unwrap() []error {
	return []error{ErrInvalidCredential, e.Cause}
}

type SubmissionError struct {
	Function string
	Cause    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSubmission, e.Function, e.Cause)
}

func (e *SubmissionError) Unwrap() []error {
	return []error{ErrSubmission, e.Cause}
}

type AccountNotFoundError struct {
	Address string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAccountNotFound, e.Address)
}

func (e *AccountNotFoundError) Unwrap() error {
	return ErrAccountNotFound
}

type QueryError struct {
	Address string
	Cause   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrQuery, e.Address, e.Cause)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQuery, e.Cause}
}
