/* Copyright 2025 Booksales Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserRemoveCmd())
	cmd.AddCommand(newUserResetPasswordCmd())

	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var username, password, role, name, email, dataDir string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(dataDir)
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword(fmt.Sprintf("Password for %s", username))
				if err != nil {
					return err
				}
			}

			user, err := a.CreateUser(app.CreateUserParams{
				Username: username,
				Password: password,
				Role:     role,
				Name:     name,
				Email:    email,
			})
			if err != nil {
				return errors.Wrap(err, "creating user")
			}

			color.Green("User created")
			fmt.Printf("Username: %s\n", user.Username)
			fmt.Printf("Role: %s\n", user.Role)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&username, "username", "", "Username (required)")
	f.StringVar(&password, "password", "", "Password. Prompted for if omitted.")
	f.StringVar(&role, "role", store.RoleClient, "Role: admin or client")
	f.StringVar(&name, "name", "", "Display name")
	f.StringVar(&email, "email", "", "Email address")
	f.StringVar(&dataDir, "dataDir", "", "Path to the directory holding the CSV tables (env: DataDir, default: $XDG_DATA_HOME/booksales)")
	cmd.MarkFlagRequired("username")

	return cmd
}

func newUserRemoveCmd() *cobra.Command {
	var username, dataDir string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(dataDir)
			if err != nil {
				return err
			}

			if _, err := a.GetUser(username); err != nil {
				if errors.Is(err, app.ErrNotFound) {
					return errors.Errorf("user %s not found", username)
				}
				return errors.Wrap(err, "finding user")
			}

			if !yes {
				ok, err := confirm(os.Stdin, fmt.Sprintf("Remove user %s? Their books are left behind.", username))
				if err != nil {
					return errors.Wrap(err, "getting confirmation")
				}
				if !ok {
					fmt.Println("Aborted by user")
					return nil
				}
			}

			if err := a.RemoveUser(username); err != nil {
				return errors.Wrap(err, "removing user")
			}

			color.Green("User removed")
			fmt.Printf("Username: %s\n", username)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&username, "username", "", "Username (required)")
	f.BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	f.StringVar(&dataDir, "dataDir", "", "Path to the directory holding the CSV tables (env: DataDir, default: $XDG_DATA_HOME/booksales)")
	cmd.MarkFlagRequired("username")

	return cmd
}

func newUserResetPasswordCmd() *cobra.Command {
	var username, password, dataDir string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset the password of a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(dataDir)
			if err != nil {
				return err
			}

			if _, err := a.GetUser(username); err != nil {
				if errors.Is(err, app.ErrNotFound) {
					return errors.Errorf("user %s not found", username)
				}
				return errors.Wrap(err, "finding user")
			}

			if password == "" {
				password, err = promptPassword(fmt.Sprintf("New password for %s", username))
				if err != nil {
					return err
				}
			}

			if err := a.UpdateUser(username, app.UpdateUserParams{Password: &password}); err != nil {
				return errors.Wrap(err, "updating user")
			}

			color.Green("Password updated")
			fmt.Printf("Username: %s\n", username)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&username, "username", "", "Username (required)")
	f.StringVar(&password, "password", "", "New password. Prompted for if omitted.")
	f.StringVar(&dataDir, "dataDir", "", "Path to the directory holding the CSV tables (env: DataDir, default: $XDG_DATA_HOME/booksales)")
	cmd.MarkFlagRequired("username")

	return cmd
}
