package models

import "time"

// User represents a platform account: client, provider or admin.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	UserType     string    `bson:"userType" json:"userType"`
	Suspended    bool      `bson:"suspended" json:"suspended"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// Provider-only fields.
	ServiceType string `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	Rate        string `bson:"rate,omitempty" json:"rate,omitempty"`
	IsAvailable *bool  `bson:"isAvailable,omitempty" json:"isAvailable,omitempty"`
}

// Actor returns the session identity of the user.
func (u User) Actor() Actor {
	return Actor{ID: u.ID, Username: u.Username, UserType: u.UserType}
}

// ProviderSnapshot returns the copy of a provider embedded in booking details.
func (u User) ProviderSnapshot() ProviderSnapshot {
	return ProviderSnapshot{
		ID:          u.ID,
		Username:    u.Username,
		ServiceType: u.ServiceType,
		Rate:        u.Rate,
		PhoneNumber: u.PhoneNumber,
		IsAvailable: u.IsAvailable,
	}
}

// UserRegistration is the payload accepted when an account is created.
type UserRegistration struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	UserType    string `json:"userType" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	ServiceType string `json:"serviceType"`
	Rate        string `json:"rate"`
	IsAvailable *bool  `json:"isAvailable"`
}
