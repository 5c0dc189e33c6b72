// Command tests seeds the configured database with a services catalogue,
// a handful of providers and one client for local development.
package main

import (
	"context"
	"log"
	"time"

	"servicehub/config"
	"servicehub/database"
	"servicehub/database/gateway"
	"servicehub/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "Passw0rd!"

type seedProvider struct {
	Username    string
	ServiceType string
	Rate        string
	Available   bool
	Phone       string
}

func main() {
	config.LoadConfig()
	if err := database.InitDB(); err != nil {
		log.Fatalf("seed: %v", err)
	}
	gw := gateway.NewMongoGateway(database.Database(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer database.Close(ctx)

	// Clear existing data.
	for _, coll := range []string{gateway.CollectionServices, gateway.CollectionBookings, gateway.CollectionUsers} {
		if _, err := gw.DeleteAll(ctx, coll); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	services := []models.Service{
		{Name: "Plumbing", Category: "Home", Icon: "wrench", Price: "40"},
		{Name: "Cleaning", Category: "Home", Icon: "broom", Price: "25"},
		{Name: "Electrical", Category: "Home", Icon: "bolt", Price: "55"},
		{Name: "Gardening", Category: "Outdoor", Icon: "leaf", Price: "30"},
	}
	for _, svc := range services {
		svc.Price = decimal.RequireFromString(svc.Price).StringFixed(2)
		insert(ctx, gw, gateway.CollectionServices, svc)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	now := time.Now().UTC()

	providers := []seedProvider{
		{"mario", "Plumbing", "35", true, "555-0101"},
		{"luigi", "Plumbing", "30.5", true, "555-0102"},
		{"mop", "Cleaning", "20", true, "555-0103"},
		{"sparky", "Electrical", "60", false, "555-0104"},
		{"fern", "Gardening", "28", true, "555-0105"},
	}
	for _, p := range providers {
		available := p.Available
		insert(ctx, gw, gateway.CollectionUsers, models.User{
			Username:     p.Username,
			PasswordHash: string(hash),
			UserType:     models.UserTypeProvider,
			PhoneNumber:  p.Phone,
			ServiceType:  p.ServiceType,
			Rate:         decimal.RequireFromString(p.Rate).StringFixed(2),
			IsAvailable:  &available,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	insert(ctx, gw, gateway.CollectionUsers, models.User{
		Username:     "client",
		PasswordHash: string(hash),
		UserType:     models.UserTypeClient,
		PhoneNumber:  "555-0200",
		Email:        "client@example.com",
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	log.Printf("Seeded %d services, %d providers and 1 client (password %q)", len(services), len(providers), seedPassword)
}

func insert(ctx context.Context, gw gateway.Gateway, collection string, v any) {
	rec, err := gateway.Encode(v)
	if err != nil {
		log.Fatalf("Failed to encode %s record: %v", collection, err)
	}
	delete(rec, gateway.IDField)
	if _, err := gw.Insert(ctx, collection, rec); err != nil {
		log.Fatalf("Failed to insert into %s: %v", collection, err)
	}
}
