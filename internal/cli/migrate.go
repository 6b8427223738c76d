package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Create or upgrade the record store schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		fmt.Printf("Migrations applied (%s store)\n", services.DB.Driver())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
