package main

import (
	"fmt"
	"os"

	"github.com/rochejul/npmversion-sub000/cmd"
	"github.com/rochejul/npmversion-sub000/internal/utils"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists, NPMVERSION_RC may be set there
	if err := godotenv.Load(); err == nil {
		utils.LogDebug("Loaded environment variables from .env file")
	}
}

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
