package main

import (
	"log"
	"os"
	"time"

	"conote-be/internal/model"
	"conote-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a superuser plus two demo accounts for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding users...")

	users := []struct {
		Username    string
		Email       string
		Phone       string
		Password    string
		IsSuperuser bool
	}{
		{"admin", "admin@conote.local", "", "admin12345", true},
		{"alice", "alice@conote.local", "+621100000001", "alice12345", false},
		{"bob", "bob@conote.local", "+621100000002", "bob12345", false},
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Email)
			continue
		} else if err != gorm.ErrRecordNotFound {
			color.Red("Lookup failed for '%s': %v", u.Email, err)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			color.Red("Hash failed for '%s': %v", u.Email, err)
			continue
		}

		row := model.User{
			Id:           uuid.New(),
			Username:     u.Username,
			Email:        u.Email,
			PhoneNumber:  u.Phone,
			PasswordHash: string(hash),
			IsSuperuser:  u.IsSuperuser,
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&row).Error; err != nil {
			color.Red("Create failed for '%s': %v", u.Email, err)
			continue
		}
		color.Green("Created user: %s", u.Email)
	}

	color.Cyan("Seeding completed")
}
