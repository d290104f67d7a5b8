package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidationError is a client-side rejection raised before any network
// call. Transport never sees the request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func fieldErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ErrSubmitInFlight guards against duplicate submission while a request is
// outstanding.
var ErrSubmitInFlight = errors.New("submission already in progress")

// numericInRange parses a user-entered numeric field and checks its bounds.
// Empty input is allowed; the zero return means absent.
func numericInRange(field, raw string, min, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldErr(field, "%s must be a number", field)
	}
	if n < min || n > max {
		return 0, fieldErr(field, "%s must be between %d and %d", field, min, max)
	}
	return n, nil
}

// maxPublicationYear allows records dated one year ahead, for works already
// in press.
func maxPublicationYear() int {
	return time.Now().Year() + 1
}

func requireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fieldErr("title", "title is required")
	}
	return nil
}

func requireAuthors(authors []string) error {
	if len(authors) == 0 {
		return fieldErr("authors", "at least one author is required")
	}
	return nil
}
