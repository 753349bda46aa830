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

// Package cmd provides the commands for the booksales server binary
package cmd

import (
	"github.com/spf13/cobra"
)

var root = &cobra.Command{
	Use:           "booksales-server",
	Short:         "booksales-server - sales analytics for publishers",
	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Register adds a new command to the root command
func Register(cmd *cobra.Command) {
	root.AddCommand(cmd)
}

// Execute runs the root command
func Execute() error {
	return root.Execute()
}

func init() {
	Register(newStartCmd())
	Register(newUserCmd())
	Register(newVersionCmd())
}
