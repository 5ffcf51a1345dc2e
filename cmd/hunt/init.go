package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/hunt-tracker/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new hunt workspace",
		Long:  "Writes .hunt/config.yaml and creates the resources directory and match database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := basePath()
			if err != nil {
				return err
			}

			handler := handlers.NewInitHandler(openStore, openIndex)
			result, err := handler.Handle(cmd.Context(), base)
			if err != nil {
				return err
			}

			fmt.Printf("Initialized hunt in %s\n", base)
			fmt.Printf("Config: %s\n", result.ConfigPath)
			fmt.Printf("Resources: %s\n", result.ResourcesDir)
			fmt.Printf("Database: %s\n", result.DatabasePath)
			if result.CollectionName != "" {
				fmt.Printf("Lobby index: %s\n", result.CollectionName)
			}
			return nil
		},
	}
}
