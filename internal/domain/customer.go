package domain

import "github.com/google/uuid"

type Customer struct {
	ID        string `json:"id" form:"id"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
}

type CustomerCreate struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" form:"email" validate:"required,email"`
}

type CustomerGet struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

func (d CustomerCreate) Customer() Customer {
	return Customer{
		ID:        uuid.NewString(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
	}
}

// FullName is derived, never stored.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c Customer) AsGet() CustomerGet {
	return CustomerGet{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
	}
}
