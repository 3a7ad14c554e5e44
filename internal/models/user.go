package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

type User struct {
	Versioned
	ID          uuid.UUID  `json:"id"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Username    string     `json:"username,omitempty"`
	FirstName   string     `json:"firstname,omitempty"`
	LastName    string     `json:"lastname,omitempty"`
	CountryCode string     `json:"countryCode,omitempty"`
	CountryName string     `json:"countryName,omitempty"`
	Verified    bool       `json:"verified"`
	Plan        string     `json:"plan,omitempty"`
	Roles       []RoleType `json:"roles"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u *User) GetID() string { return u.ID.String() }

func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
