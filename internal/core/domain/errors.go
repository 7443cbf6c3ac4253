// internal/core/domain/errors.go
package domain

import "errors"

// ErrNotFound is returned by repositories when a singular lookup matches no
// rows. Handlers translate it into a 404 response.
var ErrNotFound = errors.New("record not found")
