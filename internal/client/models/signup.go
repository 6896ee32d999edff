package models

import (
	"regexp"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries a message meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SignupRequest is the signup form. ConfirmPassword never leaves the client.
type SignupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	Email           string `json:"email"`
	FullName        string `json:"fullName"`
}

// Validate reports the first failing rule, checked in this order: required
// fields, username length, password length, confirmation, email format.
// An empty confirmation is caught by the confirmation rule.
func (r SignupRequest) Validate() error {
	if r.Username == "" || r.Password == "" || r.Email == "" || r.FullName == "" {
		return &ValidationError{Message: "All fields are required"}
	}
	if utf8.RuneCountInString(r.Username) < MinUsernameLength {
		return &ValidationError{Message: "Username must be at least 3 characters long"}
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return &ValidationError{Message: "Password must be at least 6 characters long"}
	}
	if r.Password != r.ConfirmPassword {
		return &ValidationError{Message: "Passwords do not match"}
	}
	if !emailPattern.MatchString(r.Email) {
		return &ValidationError{Message: "Please enter a valid email address"}
	}
	return nil
}

// SignupResponse is the store's answer to a signup attempt.
type SignupResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Username string `json:"username,omitempty"`
}
