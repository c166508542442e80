package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

const SecretKeyBytesLen = 32

// Prints a pair of random secrets: one for access tokens, one for refresh
// tokens. They must never be the same value.
func main() {
	gen := func() string {
		b := make([]byte, SecretKeyBytesLen)

		_, err := rand.Read(b)
		if err != nil {
			fmt.Printf("error while generating secret key: %v", err)
			os.Exit(1)
		}

		return hex.EncodeToString(b)
	}

	fmt.Printf("JWT_SECRET=%s\n", gen())
	fmt.Printf("REFRESH_TOKEN_SECRET=%s\n", gen())
}
