package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files from the working directory and from dir.
// Variables already set in the process environment win.
func loadEnvFiles(dir string) {
	seen := map[string]bool{}
	for _, base := range []string{".", dir} {
		for _, name := range envFiles {
			p := filepath.Join(base, name)
			abs, err := filepath.Abs(p)
			if err != nil || seen[abs] {
				continue
			}
			seen[abs] = true
			if _, err := os.Stat(p); err != nil {
				continue
			}
			_ = godotenv.Load(p)
		}
	}
}
