package models

import (
	"errors"
	"fmt"
)

// Integrity faults. Unlike cast outcomes these surface as request errors.
var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrChoiceNotFound = errors.New("choice not found")
)

// InvalidPollError reports malformed poll creation input. Field names the
// offending input: "question", "choices", "ordering", "protection_mode" or
// "selection_limit".
type InvalidPollError struct {
	Field  string
	Reason string
}

func (e *InvalidPollError) Error() string {
	return fmt.Sprintf("invalid poll: %s: %s", e.Field, e.Reason)
}

// AsInvalidPoll unwraps err into an *InvalidPollError if it is one.
func AsInvalidPoll(err error) (*InvalidPollError, bool) {
	var ipe *InvalidPollError
	if errors.As(err, &ipe) {
		return ipe, true
	}
	return nil, false
}
