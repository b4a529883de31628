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

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nscaledev/lpg-smoke/pkg/cases"
	"github.com/nscaledev/lpg-smoke/pkg/config"
	"github.com/nscaledev/lpg-smoke/pkg/twin"
)

// execute runs the root command with the given arguments, capturing output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.ExecuteContext(t.Context())

	return out.String(), err
}

func portal(t *testing.T, options twin.Options) string {
	t.Helper()

	server, err := twin.New(options)
	require.NoError(t, err)

	httpServer := httptest.NewServer(server)
	t.Cleanup(httpServer.Close)

	return httpServer.URL
}

func TestCasesCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "cases")
	require.NoError(t, err)
	require.Contains(t, out, "spbe_update_stock")
	require.Contains(t, out, "/api/spbe/update-stock")
	require.Contains(t, out, "Route Optimization")
}

func TestRunCommandPasses(t *testing.T) {
	t.Parallel()

	report := filepath.Join(t.TempDir(), "results.json")

	out, err := execute(t, "run", "--base-url", portal(t, twin.Options{}), "--report", report, "--no-color")
	require.NoError(t, err)
	require.Contains(t, out, "Success Rate: 100.0%")
	require.FileExists(t, report)
}

func TestRunIsTheDefaultCommand(t *testing.T) {
	t.Parallel()

	report := filepath.Join(t.TempDir(), "results.json")

	out, err := execute(t, "--base-url", portal(t, twin.Options{}), "--report", report, "--no-color", "--case", "api_root")
	require.NoError(t, err)
	require.Contains(t, out, "Total Tests: 1")
}

func TestRunCommandFailures(t *testing.T) {
	t.Parallel()

	report := filepath.Join(t.TempDir(), "results.json")

	_, err := execute(t, "run", "--base-url", portal(t, twin.Options{FailStatus: http.StatusInternalServerError}), "--report", report, "--no-color")
	require.ErrorIs(t, err, errTestsFailed)
	require.FileExists(t, report)
}

func TestRunCommandRejectsUnknownCase(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "run", "--case", "spbe_delete")
	require.ErrorIs(t, err, cases.ErrUnknownCase)
}

func TestRunCommandRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "run", "--base-url", "portal.local")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
