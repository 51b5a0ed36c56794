package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
)

type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	Username     string        `json:"username"`
	FullName     string        `json:"full_name"`
	Role         coreUser.Role `json:"role"`
	IsActive     bool          `json:"is_active"`
	PasswordHash string        `json:"-"` // Never expose password hash
	CreatedAt    time.Time     `json:"created_at"`
}

func (u *User) Actor() *coreUser.Actor {
	return &coreUser.Actor{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         coreUser.Role(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
