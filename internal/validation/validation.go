// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks that a password is usable before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	// bcrypt ignores input beyond 72 bytes; reject instead of truncating silently.
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}

	return nil
}

// ValidateVoteDir checks the vote direction is binary: 1 adds a vote,
// 0 retracts one.
func ValidateVoteDir(dir int) error {
	if dir != 0 && dir != 1 {
		return fmt.Errorf("dir must be either 0 or 1")
	}
	return nil
}
