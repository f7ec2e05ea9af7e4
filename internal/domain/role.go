package domain

import "time"

// Role classifies an identity as either a customer or a driver.
type Role string

// List of possible roles
const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
)

var allowedRoles = [...]Role{RoleCustomer, RoleDriver}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// RoleAssignment binds an external identity to a role. It is written once
// when the identity provider reports the user and never mutated afterwards.
type RoleAssignment struct {
	UserID      string
	Role        Role
	PhoneNumber string
	CreatedAt   time.Time
}
