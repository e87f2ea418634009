// Command create-admin creates a back-office user directly in the store.
//
// Usage: create-admin -username admin -password <password>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"facturation/internal/models"
	"facturation/internal/repositories"
	"facturation/internal/services"
)

func main() {
	username := flag.String("username", "", "username of the user to create (at least 3 characters)")
	password := flag.String("password", "", "password of the user to create (at least 4 characters)")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Usage: create-admin -username <username> -password <password>")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "facturation.db")
	viper.AutomaticEnv()

	var dialector gorm.Dialector
	switch viper.GetString("DATABASE_DRIVER") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("DATABASE_DSN"))
	default:
		dialector = sqlite.Open(viper.GetString("DATABASE_DSN"))
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"), 24*time.Hour)

	user, err := authService.CreateUser(*username, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User %q created\n", user.Username)
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Created: %s\n", user.CreatedAt.Format(time.RFC3339))
}
