package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors the handlers map onto HTTP status codes.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrSelfModify = errors.New("cannot modify your own account")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// DuplicateQuestionsError rejects a bulk interview import naming the
// offending questions.
type DuplicateQuestionsError struct {
	Questions []string
}

func (e *DuplicateQuestionsError) Error() string {
	return fmt.Sprintf("duplicates found: %s", strings.Join(e.Questions, ", "))
}

func (e *DuplicateQuestionsError) Is(target error) bool {
	return target == ErrConflict
}
