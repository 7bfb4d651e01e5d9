package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"fintrack/storage"
)

func main() {
	username := flag.String("username", "", "username for the new account")
	password := flag.String("password", "", "password (omit to be prompted)")
	flag.Parse()

	if strings.TrimSpace(*username) == "" {
		fmt.Println("usage: go run ./cmd/create_user -username <name> [-password <password>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	pw := *password
	if pw == "" {
		var err error
		pw, err = promptPassword()
		if err != nil {
			log.Fatalf("failed to read password: %v", err)
		}
	}

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := storage.Open(dsn, true)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	users := storage.NewUserStore(db)
	user, err := users.CreateUser(context.Background(), *username, pw)
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d\n", user.Username, user.ID)
}

// promptPassword reads the password without echo when stdin is a terminal,
// falling back to a plain line read for pipes.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no input")
}
