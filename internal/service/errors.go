// Package service implements business logic, authorization, and orchestration
// between HTTP handlers and the repository layer.
package service

import "errors"

// ErrForbidden is returned when the principal lacks the role or ownership
// an operation requires.
var ErrForbidden = errors.New("not enough permissions")

// ErrInvalidCredentials is returned when the email is unknown or the
// password does not match.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// ErrInactiveAccount is returned when credentials match a deactivated
// account.
var ErrInactiveAccount = errors.New("account is deactivated")

// ErrNotManager is returned when a manager decision targets a user who
// never requested the manager role.
var ErrNotManager = errors.New("user is not a manager")

// ErrInvalidInput is returned for malformed or business-rule-violating
// input; callers wrap it with a specific message.
var ErrInvalidInput = errors.New("invalid input")
