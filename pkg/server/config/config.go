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

package config

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/khwaab/booksales/pkg/dirs"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// DefaultDataDirName is the default directory name for booksales data
	DefaultDataDirName = "booksales"
)

var (
	// DefaultDataDir is the default path to the directory holding the CSV tables
	DefaultDataDir = filepath.Join(dirs.DataHome, DefaultDataDirName)
)

var (
	// ErrDataDirMissing is an error for an incomplete configuration missing the data directory
	ErrDataDirMissing = errors.New("Data directory is empty")
	// ErrWebURLInvalid is an error for an incomplete configuration with invalid web url
	ErrWebURLInvalid = errors.New("Invalid WebURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
)

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

// Config is an application configuration
type Config struct {
	AppEnv   string
	WebURL   string
	Port     string
	DataDir  string
	LogLevel string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv   string `yaml:"appEnv"`
	Port     string `yaml:"port"`
	WebURL   string `yaml:"webUrl"`
	DataDir  string `yaml:"dataDir"`
	LogLevel string `yaml:"logLevel"`
}

// ReadFile merges the values from the YAML configuration file at the given
// path into p. Values already set on p take precedence over the file.
func (p *Params) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	var fromFile Params
	if err := yaml.Unmarshal(b, &fromFile); err != nil {
		return errors.Wrap(err, "parsing config file")
	}

	if p.AppEnv == "" {
		p.AppEnv = fromFile.AppEnv
	}
	if p.Port == "" {
		p.Port = fromFile.Port
	}
	if p.WebURL == "" {
		p.WebURL = fromFile.WebURL
	}
	if p.DataDir == "" {
		p.DataDir = fromFile.DataDir
	}
	if p.LogLevel == "" {
		p.LogLevel = fromFile.LogLevel
	}

	return nil
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:   getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:     getOrEnv(p.Port, "PORT", "3001"),
		WebURL:   getOrEnv(p.WebURL, "WebURL", "http://localhost:3001"),
		DataDir:  getOrEnv(p.DataDir, "DataDir", DefaultDataDir),
		LogLevel: getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if _, err := url.ParseRequestURI(c.WebURL); err != nil {
		return errors.Wrapf(ErrWebURLInvalid, "'%s'", c.WebURL)
	}
	if c.Port == "" {
		return ErrPortInvalid
	}

	if c.DataDir == "" {
		return ErrDataDirMissing
	}

	return nil
}
