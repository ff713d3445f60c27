package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"slidecraft/config"
	"slidecraft/db"
	"slidecraft/models"
	"slidecraft/utils"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "User email (required)")
	password := flag.String("password", "", "User password, at least 8 characters (required)")
	name := flag.String("name", "", "Display name (defaults to the part of the email before @)")
	configPath := flag.String("config", config.DefaultPath, "Path to config file")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if len(*password) < 8 {
		fmt.Println("Error: password must be at least 8 characters")
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close(context.Background())

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	displayName := strings.TrimSpace(*name)
	if displayName == "" {
		displayName = utils.ExtractNameFromEmail(*email)
	}

	user := &models.User{Email: *email, DisplayName: displayName, Password: hash}
	if err := store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			log.Fatalf("User with email %s already exists", *email)
		}
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created user %s (%s) with id %s\n", user.DisplayName, user.Email, user.ID.Hex())
}
