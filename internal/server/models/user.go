package models

import "time"

// User is a row of the users table. PasswordHash never leaves the
// repository and service layers; everything else is exposed via Profile.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public projection of a User.
type Profile struct {
	ID        int64
	Email     string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile returns the public projection of u.
func (u *User) Profile() *Profile {
	if u == nil {
		return nil
	}
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
