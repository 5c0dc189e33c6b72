package models

// Service is an entry of the services catalogue.
type Service struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Category string `bson:"category" json:"category"`
	Icon     string `bson:"icon,omitempty" json:"icon,omitempty"`
	Price    string `bson:"price,omitempty" json:"price,omitempty"`
}

// Snapshot returns the copy of the service embedded in booking details.
func (s Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{ID: s.ID, Name: s.Name, Category: s.Category, Price: s.Price}
}
