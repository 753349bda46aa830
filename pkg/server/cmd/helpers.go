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
	"bufio"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/khwaab/booksales/pkg/clock"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/config"
	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// initApp builds an application from the given config and prepares
// the data directory for use.
func initApp(cfg config.Config) (*app.App, error) {
	s := store.New(cfg.DataDir)
	a := app.NewApp(s, clock.New())

	if err := a.Bootstrap(); err != nil {
		return nil, errors.Wrap(err, "bootstrapping app")
	}

	return a, nil
}

// openApp builds an application for a one-off administrative command.
// The data directory falls back to the environment and defaults.
func openApp(dataDir string) (*app.App, error) {
	cfg, err := config.New(config.Params{DataDir: dataDir})
	if err != nil {
		return nil, errors.Wrap(err, "initializing config")
	}

	return initApp(cfg)
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)

	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println("")
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}

	return string(b), nil
}

// confirm prompts for user input to confirm a choice
func confirm(r io.Reader, question string) (bool, error) {
	fmt.Printf("%s [y/N]: ", question)

	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "reading stdin")
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}
