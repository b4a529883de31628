/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nscaledev/lpg-smoke/pkg/constants"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// BaseURL is the portal root, the API lives under /api.
	BaseURL        string
	RequestTimeout time.Duration
	ReportPath     string
	DebugLogging   bool
	LogRequests    bool
	LogResponses   bool
	NoColor        bool
}

// envPaths are tried in order, the first readable file wins.
//
//nolint:gochecknoglobals
var envPaths = []string{
	".env",
	"test/.env",
}

// Load loads configuration from environment variables and .env files.
// Returns an error if configuration values are malformed.
func Load() (*Config, error) {
	config := FromEnvironment()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnvironment reads configuration without validating it, so command line
// overrides can be applied first.
func FromEnvironment() *Config {
	loadEnvFile()

	return &Config{
		BaseURL:        getStringWithDefault("NEXT_PUBLIC_BASE_URL", constants.DefaultBaseURL),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		ReportPath:     getStringWithDefault("REPORT_PATH", constants.DefaultReportPath),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
		NoColor:        os.Getenv("NO_COLOR") != "",
	}
}

// AddFlags registers overrides for every value, defaulting to what was loaded
// from the environment.
func (c *Config) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&c.BaseURL, "base-url", c.BaseURL, "Portal base URL, the API is served under /api.")
	f.DurationVar(&c.RequestTimeout, "request-timeout", c.RequestTimeout, "Timeout for a single HTTP request.")
	f.StringVar(&c.ReportPath, "report", c.ReportPath, "Path the JSON results log is written to.")
	f.BoolVar(&c.DebugLogging, "debug", c.DebugLogging, "Enable debug logging.")
	f.BoolVar(&c.LogRequests, "log-requests", c.LogRequests, "Log every request with status and duration.")
	f.BoolVar(&c.LogResponses, "log-responses", c.LogResponses, "Log every response body.")
	f.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable colored console output.")
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	var problems []string

	if c.BaseURL == "" {
		problems = append(problems, "NEXT_PUBLIC_BASE_URL is empty")
	} else if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("NEXT_PUBLIC_BASE_URL %q is not an absolute http(s) URL", c.BaseURL))
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}

	if c.ReportPath == "" {
		problems = append(problems, "REPORT_PATH is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}

	return nil
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Variables already set in the environment take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
