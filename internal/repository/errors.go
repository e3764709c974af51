package repository

import "errors"

// ErrConcurrentUpdate means the record changed since it was loaded. Reload
// and try again.
var ErrConcurrentUpdate = errors.New("progression was modified concurrently")

// DefaultHistoryLimit caps history listings when no limit is given
const DefaultHistoryLimit = 50
