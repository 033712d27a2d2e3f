package authprovider

import (
	"fmt"
	"strings"
)

type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

type UserMetadata struct {
	FullName string `json:"full_name"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type credentials struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     *signUpPayload `json:"data,omitempty"`
}

type signUpPayload struct {
	FullName string `json:"full_name,omitempty"`
}

// signUpResponse is either a session (auto-confirmed accounts) or a bare user.
type signUpResponse struct {
	User
	Nested *User `json:"user"`
}

func (r signUpResponse) user() User {
	if r.Nested != nil && r.Nested.ID != "" {
		return *r.Nested
	}
	return r.User
}

// ErrorResponse is the provider's error body. Depending on the endpoint it uses
// either error/error_description or code/msg.
type ErrorResponse struct {
	StatusCode       int    `json:"-"`
	Code             any    `json:"code,omitempty"`
	ErrorCode        string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	Msg              string `json:"msg,omitempty"`
	Message          string `json:"message,omitempty"`
}

func (e *ErrorResponse) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.ErrorCode, e.ErrorDescription, e.Msg, e.Message} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return fmt.Sprintf("auth provider error (status %d): %s", e.StatusCode, strings.Join(parts, ": "))
}

func (e *ErrorResponse) empty() bool {
	return e.ErrorCode == "" && e.ErrorDescription == "" && e.Msg == "" && e.Message == ""
}
