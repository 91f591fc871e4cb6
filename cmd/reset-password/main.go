package main

import (
	"flag"
	"log"
	"os"

	"go-billing-ws/internal/model"
	"go-billing-ws/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	email := flag.String("email", os.Getenv("OWNER_EMAIL"), "owner account email")
	newPassword := flag.String("password", "owner123", "new password to set")
	flag.Parse()

	if *email == "" {
		log.Fatal("❌ No email given: pass -email or set OWNER_EMAIL")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the owner account
	var owner model.Owner
	if err := db.Where("email = ?", *email).First(&owner).Error; err != nil {
		log.Fatalf("❌ Owner %s not found in database: %v", *email, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&owner).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *email)
}
