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
	"net/http"

	"github.com/joho/godotenv"
	"github.com/khwaab/booksales/pkg/server/buildinfo"
	"github.com/khwaab/booksales/pkg/server/config"
	"github.com/khwaab/booksales/pkg/server/controllers"
	"github.com/khwaab/booksales/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var port, webURL, dataDir, logLevel, configFile string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the booksales server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env if present. Missing files are not an error.
			godotenv.Load()

			params := config.Params{
				Port:     port,
				WebURL:   webURL,
				DataDir:  dataDir,
				LogLevel: logLevel,
			}
			if configFile != "" {
				if err := params.ReadFile(configFile); err != nil {
					return errors.Wrap(err, "reading config file")
				}
			}

			cfg, err := config.New(params)
			if err != nil {
				return errors.Wrap(err, "initializing config")
			}

			log.SetLevel(cfg.LogLevel)

			a, err := initApp(cfg)
			if err != nil {
				return errors.Wrap(err, "initializing app")
			}

			ctl := controllers.New(a)
			rc := controllers.RouteConfig{
				WebRoutes:   controllers.NewWebRoutes(a, ctl),
				APIRoutes:   controllers.NewAPIRoutes(a, ctl),
				Controllers: ctl,
			}

			r, err := controllers.NewRouter(a, rc)
			if err != nil {
				return errors.Wrap(err, "initializing router")
			}

			log.WithFields(log.Fields{
				"version": buildinfo.Version,
				"port":    cfg.Port,
				"dataDir": cfg.DataDir,
			}).Info("Booksales server starting")

			return http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r)
		},
	}

	f := cmd.Flags()
	f.StringVar(&port, "port", "", "Server port (env: PORT, default: 3001)")
	f.StringVar(&webURL, "webUrl", "", "Full URL to server without trailing slash (env: WebURL, default: http://localhost:3001)")
	f.StringVar(&dataDir, "dataDir", "", "Path to the directory holding the CSV tables (env: DataDir, default: $XDG_DATA_HOME/booksales)")
	f.StringVar(&logLevel, "logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")
	f.StringVar(&configFile, "configFile", "", "Path to a YAML configuration file. Flags take precedence.")

	return cmd
}
