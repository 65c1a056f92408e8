package handlers

import "errors"

// Business failures raised inside transactions. The transaction wrapper rolls
// back on any of them; handlers translate them to status codes.
var (
	errDuplicateEmail = errors.New("email already exists")
	errTeamNotFound   = errors.New("team not found")
	errNotFound       = errors.New("record not found")
)
