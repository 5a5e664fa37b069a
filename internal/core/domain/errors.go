package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized access")
)
