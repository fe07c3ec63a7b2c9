package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var addrFlag string
	var tokenFlag string

	client := &apiClient{}

	rootCmd := &cobra.Command{
		Use:           "prodctl",
		Short:         "Production status board CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			addr := addrFlag
			if addr == "" {
				addr = os.Getenv("PRODBOARD_ADDR")
			}
			if addr == "" {
				addr = "http://localhost:8080"
			}
			token := tokenFlag
			if token == "" {
				token = os.Getenv("PRODBOARD_AUTH_TOKEN")
			}
			client.base = addr
			client.token = token
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", "", "Server address (default http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Bearer token for the API")

	rootCmd.AddCommand(newProjectsCommand(client))
	rootCmd.AddCommand(newGridCommand(client))
	rootCmd.AddCommand(newLaunchCommand(client))
	rootCmd.AddCommand(newDeliveryCommand(client))
	rootCmd.AddCommand(newTasksCommand(client))

	return rootCmd
}
