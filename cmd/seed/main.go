// Seeds the database with demo categories, products and users so the
// shop has something to browse on first run.
package main

import (
	"fmt"
	"os"

	"webshop-demo/internal/client"
	"webshop-demo/internal/config"
	"webshop-demo/internal/model"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}

	if err := seedCategories(db); err != nil {
		log.WithError(err).Fatal("seed categories failed")
	}
	if err := seedProducts(db); err != nil {
		log.WithError(err).Fatal("seed products failed")
	}
	if err := seedUsers(db); err != nil {
		log.WithError(err).Fatal("seed users failed")
	}

	log.Info("database seeded")
}

func seedCategories(db *gorm.DB) error {
	names := []string{
		"Electronics", "Books", "Clothing", "Footwear", "Audio",
		"Kitchen", "Travel", "Sports", "Toys", "Accessories",
	}

	categories := make([]model.Category, len(names))
	for i, name := range names {
		categories[i] = model.Category{ID: uint(i + 1), Name: name}
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error
}

func seedProducts(db *gorm.DB) error {
	products := []model.Product{
		{Name: "Smartphone", Price: decimal.NewFromFloat(299.99), Stock: 10, Description: "Latest model", CategoryID: 1},
		{Name: "Laptop", Price: decimal.NewFromFloat(899.99), Stock: 5, Description: "High performance", CategoryID: 1},
		{Name: "Novel Book", Price: decimal.NewFromFloat(19.99), Stock: 20, Description: "Bestseller", CategoryID: 2},
		{Name: "T-Shirt", Price: decimal.NewFromFloat(9.99), Stock: 50, Description: "Cotton T-shirt", CategoryID: 3},
		{Name: "Jeans", Price: decimal.NewFromFloat(39.99), Stock: 25, Description: "Denim jeans", CategoryID: 3},
		{Name: "Football", Price: decimal.NewFromFloat(29.99), Stock: 15, Description: "Soccer ball", CategoryID: 8},
		{Name: "Headphones", Price: decimal.NewFromFloat(59.99), Stock: 30, Description: "Audio gear", CategoryID: 5},
		{Name: "Sneakers", Price: decimal.NewFromFloat(69.99), Stock: 20, Description: "Comfortable footwear", CategoryID: 4},
		{Name: "Blender", Price: decimal.NewFromFloat(49.99), Stock: 10, Description: "Kitchen appliance", CategoryID: 6},
		{Name: "Travel Bag", Price: decimal.NewFromFloat(79.99), Stock: 12, Description: "Durable bag", CategoryID: 7},
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func seedUsers(db *gorm.DB) error {
	names := []struct {
		first string
		email string
	}{
		{"Alice", "alice@example.com"},
		{"Bob", "bob@example.com"},
		{"Charlie", "charlie@example.com"},
		{"David", "david@example.com"},
		{"Eve", "eve@example.com"},
		{"Frank", "frank@example.com"},
		{"Grace", "grace@example.com"},
		{"Heidi", "heidi@example.com"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]model.User, len(names))
	for i, n := range names {
		users[i] = model.User{
			FirstName:    n.first,
			Email:        n.email,
			PasswordHash: string(hash),
		}
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error
}
