package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	loginUser     string
	loginPassword string
)

// loginCmd signs in and stores the session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session for later commands",
	Long: `Checks the credentials against the backend and saves the session token
in the session file. The password is read from stdin when --password is
not given.

Example:
  assettrack login -u "Prueba 1"`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := env.authStore.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		u, err := env.auth.Me(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", u.DisplayName(), u.Username)
		fmt.Fprintf(out, "Rol:   %s\n", u.Role)
		fmt.Fprintf(out, "Email: %s\n", u.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "", "User name")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (read from stdin when empty)")
	_ = loginCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	password := loginPassword
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Contraseña: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if err := env.authStore.Login(cmd.Context(), strings.TrimSpace(loginUser), password); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s\n", env.authStore.User.DisplayName())
	return nil
}
