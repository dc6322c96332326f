package postgres

import "errors"

var (
	ErrEmailExists = errors.New("email already exists")
	ErrNotPending  = errors.New("request is no longer pending")
)
