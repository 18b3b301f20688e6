// Package main is the entry point for the fitmetrics server and CLI.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"fitmetrics/internal/cli"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cli.SetVersion(version)
	cli.Execute()
}
