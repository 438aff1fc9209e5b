package config

import (
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; variables already set are never overridden,
// so earlier files take precedence over later ones.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads every present env file and returns the ones loaded.
// Unreadable or malformed files are skipped.
func loadEnvFiles() []string {
	var loaded []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	return loaded
}
