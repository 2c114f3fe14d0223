// Command hashpw prints the bcrypt hash to use as ADMIN_PASSWORD_HASH.
//
//	go run ./src/cmd/hashpw 'the-admin-password'
package main

import (
	"fmt"
	"log"
	"os"

	"flux-backend/src/services/auth"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("❌ hashing failed: %v", err)
	}
	fmt.Println(hash)
}
