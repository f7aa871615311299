package auth

import "errors"

var ErrInvalidToken = errors.New("invalid token")

// Authenticator issues and validates access tokens. The subject is the user
// id; roles are not carried in the token and are read from storage.
type Authenticator interface {
	GenerateToken(userID int64) (string, error)
	ValidateToken(token string) (int64, error)
}
