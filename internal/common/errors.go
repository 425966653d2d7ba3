// Package common holds the sentinel errors shared between the service layer
// and the transport binding. Services classify collaborator failures into
// these kinds with errors.Is; the transport maps them to wire status codes.
package common

import "errors"

var (

	// repository specific errors
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("user already exists")

	// service specific errors.
	// ErrInvalidCredentials covers unknown email, inactive account and wrong
	// password alike; ErrInvalidToken covers malformed, tampered and expired
	// tokens alike. Distinct causes share one kind so error replies cannot be
	// used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrValidation         = errors.New("validation error")
	ErrInternal           = errors.New("internal error")
)
