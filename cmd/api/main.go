package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/journalkeep/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "journalkeep",
		Short: "JournalKeep API Server",
		Long:  `JournalKeep is a diary and goal tracking backend storing its collections in a single JSON document.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewStoreCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
