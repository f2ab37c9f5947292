package services

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"connectly/internal/models"
)

// Only consumer Google mail addresses can sign up.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@(gmail\.com|googlemail\.com)$`)

const minPasswordLength = 8

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return validationError("Please provide a valid Gmail address")
	}
	return nil
}

// ValidatePassword requires at least 8 characters with one lowercase letter,
// one uppercase letter and one digit.
func ValidatePassword(password string) error {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if utf8.RuneCountInString(password) < minPasswordLength || !lower || !upper || !digit {
		return validationError("Password must be at least 8 characters long and contain at least one lowercase letter, one uppercase letter, and one digit")
	}
	return nil
}

func ValidateLink(link string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validationError("Please provide a valid http(s) link")
	}
	return nil
}

func validateDateRange(start, end *models.Date) error {
	if start != nil && end != nil && end.Before(start.Time) {
		return validationError("End date cannot be before start date")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func blankPtr(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}

// trimmed returns a trimmed copy of s, or nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
