package repository

import "errors"

// ErrNotFound is returned when a referenced document id does not exist.
// Callers test with errors.Is; repositories wrap it with entity context.
var ErrNotFound = errors.New("not found")

// ErrWriteConflict is returned when an update is conditioned on a stale
// version, meaning another writer committed between our read and write.
var ErrWriteConflict = errors.New("write conflict")
