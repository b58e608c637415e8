package main

import (
	"github.com/joho/godotenv"

	"ott-manager.app/api/internal/cli"
	"ott-manager.app/api/internal/version"
)

func main() {
	version.Load("VERSION")

	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cli.Execute()
}
