package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fintrack/storage"
)

// issue_token mints a bearer token for an existing user. It stands in for
// the external identity provider during development and operations.
func main() {
	username := flag.String("username", "", "username to mint a token for")
	password := flag.String("password", "", "verify this password before minting (optional)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if strings.TrimSpace(*username) == "" {
		fmt.Println("usage: go run ./cmd/issue_token -username <name> [-password <password>] [-ttl 24h]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // must match the server fallback
	}
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := storage.Open(dsn, false)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	users := storage.NewUserStore(db)
	ctx := context.Background()
	if *password != "" {
		if _, err := users.Authenticate(ctx, *username, *password); err != nil {
			log.Fatalf("authentication failed: %v", err)
		}
	} else if _, err := users.ByUsername(ctx, *username); err != nil {
		log.Fatalf("user %s not found", *username)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": *username,
		"exp":      time.Now().Add(*ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(signed)
}
