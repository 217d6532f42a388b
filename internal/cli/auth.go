package cli

import (
	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

var (
	flagUsername string
	flagPassword string
	flagEmail    string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the authentication session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with username and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer application.reporter.Recover("auth login")

		user, err := application.session.Login(cmd.Context(), models.LoginRequest{
			Username: flagUsername,
			Password: flagPassword,
		})
		if err != nil {
			application.reporter.ReportError("auth login", err)
			return err
		}

		cmd.Printf("Logged in as %s\n", user.Username)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer application.reporter.Recover("auth register")

		user, err := application.session.Register(cmd.Context(), models.RegisterRequest{
			Username: flagUsername,
			Email:    flagEmail,
			Password: flagPassword,
		})
		if err != nil {
			application.reporter.ReportError("auth register", err)
			return err
		}

		cmd.Printf("Registered %s\n", user.Username)
		return nil
	},
}

var guestCmd = &cobra.Command{
	Use:   "guest",
	Short: "Start an anonymous guest session",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer application.reporter.Recover("auth guest")

		user, err := application.session.Guest(cmd.Context())
		if err != nil {
			application.reporter.ReportError("auth guest", err)
			return err
		}

		cmd.Printf("Started guest session as %s\n", user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		application.session.Logout(cmd.Context())
		cmd.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := application.session.User()
		if user == nil {
			cmd.Println("Not logged in")
			return nil
		}
		return application.print(cmd, user)
	},
}

func init() {
	loginCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "account username")
	registerCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "account password")
	registerCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "account email")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("email")

	authCmd.AddCommand(loginCmd, registerCmd, guestCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(authCmd)
}
