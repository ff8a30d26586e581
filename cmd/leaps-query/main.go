// Package main is the entry point for the leaps-query CLI.
package main

import (
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/biyonik/leaps-query/cmd/leaps-query/commands"
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.New(os.Stderr, "[leaps] ", log.LstdFlags)

	app := commands.NewApp(logger)
	defer func() {
		if err := app.Container.Close(); err != nil {
			logger.Printf("❌ Kapatma hatası: %v", err)
		}
	}()

	return commands.NewRootCommand(app).Execute()
}
