package domain

import "time"

// RoleAdmin is the only role a bearer token can carry.
const RoleAdmin = "admin"

// Administrator is the single privileged identity of a deployment.
type Administrator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the identity decoded from a verified bearer token.
type Principal struct {
	Subject string
	Email   string
	Role    string
}
