package auth

import (
	"github.com/frahmantamala/timesheet-tracker/internal"
	"github.com/frahmantamala/timesheet-tracker/internal/core/common/validation"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
)

// maxPasswordBytes is the bcrypt input limit. MaxLength counts bytes.
const maxPasswordBytes = 72

// RegisterDTO is the payload of POST /auth/register. Role defaults to employee.
type RegisterDTO struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email().MaxLength(255)
	v.Field("username", d.Username).Required().MaxLength(100)
	v.Field("full_name", d.FullName).Required().MaxLength(255)
	v.Field("password", d.Password).Required().MaxLength(maxPasswordBytes)
	v.Field("role", d.Role).OneOf([]string{
		string(coreUser.RoleAdmin),
		string(coreUser.RoleManager),
		string(coreUser.RoleEmployee),
	}, internal.ErrCodeInvalidRole)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d RegisterDTO) RoleOrDefault() coreUser.Role {
	if d.Role == "" {
		return coreUser.RoleEmployee
	}
	return coreUser.Role(d.Role)
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
