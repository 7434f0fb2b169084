package users

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ademgunay/nest-api-sandbox/cmd/cli/client"
	"github.com/ademgunay/nest-api-sandbox/cmd/cli/output"
	"github.com/ademgunay/nest-api-sandbox/internal/models"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Show or edit your profile",
	}

	usersCmd.AddCommand(meCmd(), editCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// Me
// ==========================
func meCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user models.User
			if err := client.Do(http.MethodGet, "/users/me", nil, &user, true); err != nil {
				return err
			}
			return printUser(user, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// Edit
// ==========================
func editCmd() *cobra.Command {
	var asJSON bool
	var email, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit email or name of the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{}
			if cmd.Flags().Changed("email") {
				payload["email"] = email
			}
			if cmd.Flags().Changed("first-name") {
				payload["firstName"] = firstName
			}
			if cmd.Flags().Changed("last-name") {
				payload["lastName"] = lastName
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to edit: pass --email, --first-name or --last-name")
			}

			var user models.User
			if err := client.Do(http.MethodPatch, "/users/edit", payload, &user, true); err != nil {
				return err
			}
			return printUser(user, asJSON)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func printUser(u models.User, asJSON bool) error {
	if asJSON {
		return output.PrintJSON(u)
	}
	output.RenderTable(
		[]string{"ID", "Email", "First name", "Last name", "Created"},
		[][]interface{}{{u.ID, u.Email, output.Deref(u.FirstName), output.Deref(u.LastName), u.CreatedAt.Format("2006-01-02 15:04")}},
	)
	return nil
}
