package project

import "errors"

// ErrProjectNotFound indicates the requested project id does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ErrUpdateNotFound indicates the requested weekly update id does not exist
// on the addressed project.
var ErrUpdateNotFound = errors.New("weekly update not found")

// ErrInvalidProgress indicates a progress value outside the 0-100 range.
var ErrInvalidProgress = errors.New("progress must be between 0 and 100")

// ErrInvalidInput indicates a request that fails field validation.
var ErrInvalidInput = errors.New("invalid input")
