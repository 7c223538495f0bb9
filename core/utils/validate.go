package utils

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	passwordMinLength = 8
	passwordMaxLength = 128
	nameMaxLength     = 120
)

func ValidateEmail(s string) error {
	if !emailRe.MatchString(s) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword mirrors the signup rule the prototype enforced: a
// minimum length, nothing more.
func ValidatePassword(s string) error {
	if len(s) < passwordMinLength {
		return errors.New("password must be at least 8 characters long")
	}
	if len(s) > passwordMaxLength {
		return errors.New("password too long (max 128 chars)")
	}
	return nil
}

func ValidateFullName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("name is required")
	}
	if len(s) > nameMaxLength {
		return errors.New("name too long")
	}
	return nil
}

func ValidateSourceURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return errors.New("invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("URL must start with http or https")
	}
	if u.Host == "" {
		return errors.New("invalid URL")
	}
	return nil
}
