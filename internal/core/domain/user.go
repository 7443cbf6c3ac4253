// internal/core/domain/user.go
package domain

// User represents an API user row as stored in the users table.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
