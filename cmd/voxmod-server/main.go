package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Local development keeps credentials in .env; absence is fine.
	_ = godotenv.Load()

	Execute()
}
