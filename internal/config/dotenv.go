package config

import (
	"github.com/joho/godotenv"
)

// readDotenv returns the variables of the first .env file that parses.
// A missing file is not an error; the process environment still wins.
func readDotenv(paths ...string) map[string]string {
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if err == nil {
			return vars
		}
	}
	return map[string]string{}
}
