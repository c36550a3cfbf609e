package repositories

import "errors"

// ErrNotFound is returned by every repository when a lookup matches no
// row. Handlers translate it to a 404.
var ErrNotFound = errors.New("record not found")
