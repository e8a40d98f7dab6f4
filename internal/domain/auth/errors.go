package auth

import "errors"

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingUserID = errors.New("token does not carry a user id")
	ErrUnknownRole   = errors.New("token carries an unknown role")
)
