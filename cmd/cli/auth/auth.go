package auth

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ademgunay/nest-api-sandbox/cmd/cli/client"
	"github.com/ademgunay/nest-api-sandbox/cmd/cli/config"
)

// InitAuth registers "auth signup|signin|logout" on the root command.
func InitAuth(rootCmd *cobra.Command) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and out",
		Long: `Create an account or sign in to the bookmarks API.
The access token is stored locally for subsequent commands.`,
	}

	authCmd.AddCommand(
		credentialsCmd("signup", "Create an account and sign in", "/auth/signup"),
		credentialsCmd("signin", "Sign in with email and password", "/auth/signin"),
		logoutCmd(),
	)

	rootCmd.AddCommand(authCmd)
}

// ==========================
// Signup / Signin
// ==========================
func credentialsCmd(use, short, path string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if email == "" {
				fmt.Print("Email: ")
				fmt.Fscanln(in, &email)
			}
			if password == "" {
				fmt.Print("Password: ")
				fmt.Fscanln(in, &password)
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			var resp struct {
				AccessToken string `json:"access_token"`
			}
			payload := map[string]string{"email": email, "password": password}
			if err := client.Do(http.MethodPost, path, payload, &resp, false); err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}
			if resp.AccessToken == "" {
				return fmt.Errorf("%s succeeded but no token returned", use)
			}

			if err := config.SaveToken(resp.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Signed in as " + email + ". Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")

	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			existed, err := config.DeleteToken()
			if err != nil {
				return err
			}
			if !existed {
				fmt.Println("No user logged in.")
				return nil
			}
			fmt.Println("Logged out successfully.")
			return nil
		},
	}
}
