package domain

import "github.com/google/uuid"

// User is an API credential record. The password is opaque at this layer;
// the repository matches it verbatim on login.
type User struct {
	ID       string `json:"id" form:"id"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
}

type UserCreate struct {
	Username string `json:"username" form:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" form:"password" validate:"required,min=1"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Role     string `json:"role" form:"role" validate:"required"`
}

type UserLogin struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserGet is the response shape, password excluded.
type UserGet struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (d UserCreate) User() User {
	return User{
		ID:       uuid.NewString(),
		Username: d.Username,
		Password: d.Password,
		Email:    d.Email,
		Role:     d.Role,
	}
}

func (u User) AsGet() UserGet {
	return UserGet{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
