package entities

import (
	"time"
)

// Role distinguishes travelers from business accounts
type Role string

const (
	RoleTraveler Role = "traveler"
	RoleBusiness Role = "business"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTraveler || r == RoleBusiness
}

// BusinessDetails describes the business behind a business account
type BusinessDetails struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Description string `json:"description"`
}

// PaymentMethod is a stored, already tokenized payment reference
type PaymentMethod struct {
	Type     string `json:"type"`
	LastFour string `json:"lastFour,omitempty"`
	Bank     string `json:"bank,omitempty"`
}

// User represents a registered account. PasswordHash is persisted by the
// user store and must never leave the auth service; use Profile for responses.
type User struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	PasswordHash    string           `json:"password"`
	Role            Role             `json:"role"`
	BusinessDetails *BusinessDetails `json:"businessDetails,omitempty"`
	PaymentMethods  []PaymentMethod  `json:"paymentMethods,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
	LastLogin       *time.Time       `json:"lastLogin"`
	IsActive        bool             `json:"isActive"`
}

// UserProfile is the public view of a user
type UserProfile struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Role            Role             `json:"role"`
	BusinessDetails *BusinessDetails `json:"businessDetails,omitempty"`
	PaymentMethods  []PaymentMethod  `json:"paymentMethods,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
	LastLogin       *time.Time       `json:"lastLogin"`
	IsActive        bool             `json:"isActive"`
}

// Profile strips the credential hash.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		BusinessDetails: u.BusinessDetails,
		PaymentMethods:  u.PaymentMethods,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		LastLogin:       u.LastLogin,
		IsActive:        u.IsActive,
	}
}

// UserStats summarizes the user base
type UserStats struct {
	TotalUsers          int `json:"totalUsers"`
	ActiveUsers         int `json:"activeUsers"`
	TravelerUsers       int `json:"travelerUsers"`
	BusinessUsers       int `json:"businessUsers"`
	RecentRegistrations int `json:"recentRegistrations"`
}
