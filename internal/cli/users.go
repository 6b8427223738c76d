package cli

import (
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"github.com/martijn/secondchance/internal/core/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	userFirstName string
	userLastName  string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Prompt for password
		fmt.Print("Enter password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Print("Confirm password: ")
		confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if string(password) != string(confirmPassword) {
			return fmt.Errorf("passwords do not match")
		}

		res, err := services.AccountService.Register(cmd.Context(), service.RegisterInput{
			Email:     email,
			Password:  string(password),
			FirstName: userFirstName,
			LastName:  userLastName,
		})
		if err != nil {
			return err
		}

		fmt.Printf("User '%s' created successfully (id %s)\n", res.Email, res.UserID)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.AccountService.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tNAME\tCREATED AT\tUPDATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
				user.Email,
				user.FirstName,
				user.LastName,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
				user.UpdatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)

	usersAddCmd.Flags().StringVar(&userFirstName, "first-name", "", "first name (required)")
	usersAddCmd.Flags().StringVar(&userLastName, "last-name", "", "last name (required)")
}
