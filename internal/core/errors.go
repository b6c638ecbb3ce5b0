package core

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated, please log in")
)
