package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-admin-key/main.go <admin-key>")
		fmt.Println("Prints the bcrypt hash to put in ADMIN_KEY_HASH.")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash admin key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ADMIN_KEY_HASH=%s\n", string(hash))
}
