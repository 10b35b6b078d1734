package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fixdesk/fixdesk/internal/interfaces/cli/migrate"
	"github.com/fixdesk/fixdesk/internal/interfaces/cli/seed"
	"github.com/fixdesk/fixdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "fixdesk",
		Short:        "FixDesk - property maintenance ticketing",
		Long:         `FixDesk runs the maintenance ticketing API and ships its migration and demo data tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
