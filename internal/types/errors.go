package types

import "errors"

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")
var ErrValidation = errors.New("invalid input")

// ErrLocationNotFound is returned when a free-text location cannot be
// resolved to coordinates by geocoding or place search.
var ErrLocationNotFound = errors.New("location could not be resolved")
