package user

import "fmt"

// Role is the closed set of roles an account can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// IsApprover reports whether the role carries the shared admin/manager capability set.
func (r Role) IsApprover() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID       string
	Username string
	Role     Role
	IsActive bool
}

func (a *Actor) IsEmployee() bool {
	return a != nil && a.Role == RoleEmployee
}
