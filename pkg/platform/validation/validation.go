// Package validation holds the input limits shared by request parsing and the
// client-side pre-flight checks. Every failure is a CodeValidation error.
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	dErrors "legatia/pkg/domain-errors"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxMessageLength     = 1000
	MaxReasonLength      = 200
	MinSearchQueryLength = 2
	MaxSearchQueryLength = 50
)

const (
	messagePunctuation = ".,!?;:-'\"()[]{}@#$%&*+=_/|\\<>"
	textPunctuation    = ".,!?;:-'\"()[]{}"
)

// Name validates a person, family or relationship name and returns it trimmed.
func Name(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be at most %d characters", field, MaxNameLength))
	}
	if !allowed(trimmed, "-'.") {
		return "", dErrors.New(dErrors.CodeValidation, field+" contains invalid characters")
	}
	return trimmed, nil
}

// Description validates free text attached to a family or event.
func Description(value string) (string, error) {
	return text(value, "description", MaxDescriptionLength, textPunctuation, false)
}

// Message validates an invitation or admin message.
func Message(value string) (string, error) {
	return text(value, "message", MaxMessageLength, messagePunctuation, false)
}

// Reason validates a short reason or relationship label.
func Reason(value, field string) (string, error) {
	return text(value, field, MaxReasonLength, textPunctuation, true)
}

// SearchQuery validates a user search query.
func SearchQuery(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	n := utf8.RuneCountInString(trimmed)
	if n < MinSearchQueryLength {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("search query must be at least %d characters", MinSearchQueryLength))
	}
	if n > MaxSearchQueryLength {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("search query must be at most %d characters", MaxSearchQueryLength))
	}
	if !allowed(trimmed, "-'.@_") {
		return "", dErrors.New(dErrors.CodeValidation, "search query contains invalid characters")
	}
	return trimmed, nil
}

// Date validates an ISO date (YYYY-MM-DD). An empty value is allowed.
func Date(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, trimmed); err != nil {
		return "", dErrors.New(dErrors.CodeValidation, field+" must be a YYYY-MM-DD date")
	}
	return trimmed, nil
}

func text(value, field string, max int, punctuation string, required bool) (string, error) {
	trimmed := strings.TrimSpace(value)
	if required && trimmed == "" {
		return "", dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	if utf8.RuneCountInString(trimmed) > max {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	if !allowed(trimmed, punctuation) {
		return "", dErrors.New(dErrors.CodeValidation, field+" contains invalid characters")
	}
	return trimmed, nil
}

func allowed(s, extra string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		if !strings.ContainsRune(extra, r) {
			return false
		}
	}
	return true
}
