package inject

import "errors"

// ErrMissingArgument is returned by CheckRequired when a parameter without a
// default could not be bound.
var ErrMissingArgument = errors.New("inject: missing required argument")
