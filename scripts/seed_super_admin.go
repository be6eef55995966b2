package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/models"
)

// Seeds the initial super-admin account. Credentials come from
// SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD; seeding is skipped when the
// account already exists.
func main() {
	fmt.Println("Seeding super-admin account...")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config.InitMongoDB()
	if config.MongoDB == nil {
		log.Fatal("Failed to initialize MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.MongoDB.Collection(config.AppConfig.UserCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Fatalf("Failed to check existing account: %v", err)
	}
	if count > 0 {
		fmt.Printf("Account %s already exists, nothing to do\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	userID := primitive.NewObjectID().Hex()
	doc := bson.M{
		"_id":           userID,
		"email":         email,
		"password_hash": string(hash),
		"created_at":    now,
		"user_id":       userID,
		"first_name":    "Portal",
		"last_name":     "Administrator",
		"category":      models.CategorySuperAdmin,
		"role":          models.CategorySuperAdmin.Role(),
		"status":        "active",
	}

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		log.Fatalf("Failed to insert account: %v", err)
	}

	fmt.Printf("Seeded super-admin %s (user_id %s)\n", email, userID)
}
