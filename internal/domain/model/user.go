package model

import "time"

// Role names the access profile of an account.
type Role string

const (
	RoleManager Role = "gerant"
	RoleWaiter  Role = "serveur"
	RoleCook    Role = "cuisinier"
	RoleClient  Role = "client"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleWaiter, RoleCook, RoleClient:
		return true
	}
	return false
}

// Staff reports whether r belongs to restaurant personnel.
func (r Role) Staff() bool {
	return r == RoleManager || r == RoleWaiter || r == RoleCook
}

// User is a client or staff account.
type User struct {
	ID                  int64
	LastName            string
	FirstName           string
	Email               string
	Phone               string
	Role                Role
	PasswordHash        string
	Active              bool
	Verified            bool
	VerificationToken   string
	VerificationExpires *time.Time
	CreatedAt           time.Time
}

// Registration carries the data submitted when opening an account.
type Registration struct {
	LastName  string
	FirstName string
	Email     string
	Phone     string
	Password  string
}
