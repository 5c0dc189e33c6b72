package models

import "time"

// Booking is a persisted appointment between a client and a provider.
// Color is derived from Status and only changes together with it.
type Booking struct {
	ID         string         `bson:"id" json:"id"`
	Status     string         `bson:"status" json:"status"`
	Color      string         `bson:"color" json:"color"`
	Service    string         `bson:"service" json:"service"`
	ProviderID string         `bson:"providerId" json:"providerId"`
	UserID     string         `bson:"userId" json:"userId"`
	UserType   string         `bson:"userType" json:"userType"`
	CreatedAt  time.Time      `bson:"createdAt" json:"createdAt"`
	Details    BookingDetails `bson:"details" json:"details"`
}

// BookingDetails is the original booking request embedded in the record.
type BookingDetails struct {
	Date          string           `bson:"date" json:"date"`
	Time          string           `bson:"time" json:"time"`
	Provider      ProviderSnapshot `bson:"provider" json:"provider"`
	Service       ServiceSnapshot  `bson:"service" json:"service"`
	Client        ClientContact    `bson:"client" json:"client"`
	PaymentMethod string           `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
}

type ProviderSnapshot struct {
	ID          string `bson:"id" json:"id"`
	Username    string `bson:"username" json:"username"`
	ServiceType string `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	Rate        string `bson:"rate,omitempty" json:"rate,omitempty"`
	PhoneNumber string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	IsAvailable *bool  `bson:"isAvailable,omitempty" json:"isAvailable,omitempty"`
}

type ServiceSnapshot struct {
	ID       string `bson:"id,omitempty" json:"id,omitempty"`
	Name     string `bson:"name" json:"name"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
	Price    string `bson:"price,omitempty" json:"price,omitempty"`
}

type ClientContact struct {
	ID          string `bson:"id" json:"id"`
	Username    string `bson:"username" json:"username"`
	PhoneNumber string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
}
