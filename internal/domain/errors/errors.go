package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrInvalidRemains     = errors.New("invalid remains for partial delivery")
)
