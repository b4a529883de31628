/*
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

package config_test

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/nscaledev/lpg-smoke/pkg/config"
	"github.com/nscaledev/lpg-smoke/pkg/constants"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"NEXT_PUBLIC_BASE_URL", "REQUEST_TIMEOUT", "REPORT_PATH", "DEBUG_LOGGING", "LOG_REQUESTS", "LOG_RESPONSES", "NO_COLOR"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, constants.DefaultBaseURL, c.BaseURL)
	require.Equal(t, 30*time.Second, c.RequestTimeout)
	require.Equal(t, constants.DefaultReportPath, c.ReportPath)
	require.False(t, c.DebugLogging)
	require.False(t, c.NoColor)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_BASE_URL", "http://localhost:3000")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("REPORT_PATH", "/tmp/results.json")
	t.Setenv("LOG_REQUESTS", "true")
	t.Setenv("NO_COLOR", "1")

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", c.BaseURL)
	require.Equal(t, 5*time.Second, c.RequestTimeout)
	require.Equal(t, "/tmp/results.json", c.ReportPath)
	require.True(t, c.LogRequests)
	require.True(t, c.NoColor)
}

func TestLoadIgnoresMalformedTypedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("DEBUG_LOGGING", "maybe")

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, c.RequestTimeout)
	require.False(t, c.DebugLogging)
}

func TestLoadRejectsRelativeBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_BASE_URL", "subsidy-portal/api")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_BASE_URL", "http://localhost:3000")

	c, err := config.Load()
	require.NoError(t, err)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.AddFlags(flags)

	require.NoError(t, flags.Parse([]string{"--base-url", "http://127.0.0.1:8080", "--report", "out.json"}))
	require.Equal(t, "http://127.0.0.1:8080", c.BaseURL)
	require.Equal(t, "out.json", c.ReportPath)
	require.NoError(t, c.Validate())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	c := &config.Config{}

	err := c.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorContains(t, err, "NEXT_PUBLIC_BASE_URL is empty")
	require.ErrorContains(t, err, "REQUEST_TIMEOUT must be positive")
	require.ErrorContains(t, err, "REPORT_PATH is empty")
}

func TestFlagsRepairInvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_BASE_URL", "not a url")

	c := config.FromEnvironment()
	require.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.AddFlags(flags)

	require.NoError(t, flags.Parse([]string{"--base-url", "http://127.0.0.1:8080"}))
	require.NoError(t, c.Validate())
}
