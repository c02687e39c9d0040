package models

import "github.com/golang-jwt/jwt/v5"

// AdminRole is the only role the session token ever asserts.
const AdminRole = "admin"

// SessionClaims is the payload of the admin session token. There are no
// per-user claims: one shared credential, one role.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
