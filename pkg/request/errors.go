package request

import "errors"

// ErrInternalServer is the generic message returned when a handler panics.
var ErrInternalServer = errors.New("internal server error")
