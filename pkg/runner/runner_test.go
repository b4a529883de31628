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

package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nscaledev/lpg-smoke/pkg/cases"
	"github.com/nscaledev/lpg-smoke/pkg/client"
	"github.com/nscaledev/lpg-smoke/pkg/config"
	"github.com/nscaledev/lpg-smoke/pkg/results"
	"github.com/nscaledev/lpg-smoke/pkg/runner"
)

type reply struct {
	status int
	body   string
}

// fakeClient answers from a fixed route table and records session changes.
type fakeClient struct {
	routes  map[string]reply
	panicOn string

	tokens []string
	seen   []string
}

func (f *fakeClient) Do(_ context.Context, method, path string, _ any) (*client.Response, error) {
	f.seen = append(f.seen, method+" "+path)

	if path == f.panicOn {
		panic("boom")
	}

	answer, ok := f.routes[path]
	if !ok {
		answer = reply{status: 404, body: `{"success":false,"message":"Endpoint not found"}`}
	}

	response := &client.Response{
		StatusCode: answer.status,
		Body:       []byte(answer.body),
	}

	var decoded any
	if err := json.Unmarshal(response.Body, &decoded); err == nil {
		response.JSON = decoded
		response.IsJSON = true
	}

	return response, nil
}

func (f *fakeClient) BaseURL() string {
	return "http://portal.test"
}

func (f *fakeClient) SetAuthToken(token string) {
	f.tokens = append(f.tokens, token)
}

func selectCases(t *testing.T, ids ...string) *cases.Catalog {
	t.Helper()

	catalog, err := cases.Default()
	require.NoError(t, err)

	selected, err := catalog.Select(ids...)
	require.NoError(t, err)

	return selected
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		BaseURL:    "http://portal.test",
		ReportPath: filepath.Join(t.TempDir(), "backend_test_results.json"),
		NoColor:    true,
	}
}

func TestRunRecordsOneResultPerCase(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cfg := testConfig(t)
	catalog := selectCases(t)

	outcome, err := runner.New(cfg, &fakeClient{}, catalog, &out).Run(t.Context())
	require.NoError(t, err)

	require.Equal(t, len(catalog.Cases), outcome.Log.Len())
	require.Equal(t, outcome.Log.Len(), outcome.Summary.Total)
	require.Equal(t, outcome.Summary.Total, outcome.Summary.Passed+outcome.Summary.Failed)

	for i, result := range outcome.Log.Results() {
		require.Equal(t, catalog.Cases[i].Name, result.Name)
	}

	require.Contains(t, out.String(), "🚀 Starting LPG Subsidy Portal Backend API Tests")
	require.Contains(t, out.String(), "📍 Testing API at: http://portal.test/api")
	require.Contains(t, out.String(), "💾 Detailed results saved to: "+cfg.ReportPath)

	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)

	var persisted []results.TestResult
	require.NoError(t, json.Unmarshal(data, &persisted))
	require.Len(t, persisted, len(catalog.Cases))
}

func TestRunRecoversFromPanics(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	api := &fakeClient{
		panicOn: "/api/spbe",
		routes: map[string]reply{
			"/api": {status: 200, body: `{"message":"LPG Subsidy Portal API","version":"1.0.0"}`},
		},
	}

	catalog := selectCases(t, "api_root", "spbe_get_all", "invalid_endpoint")

	outcome, err := runner.New(testConfig(t), api, catalog, &out).Run(t.Context())
	require.NoError(t, err)

	got := outcome.Log.Results()
	require.Len(t, got, 3)

	require.True(t, got[0].Success)

	require.False(t, got[1].Success)
	require.Equal(t, "spbe_get_all", got[1].Name)
	require.Equal(t, "Test execution error: boom", got[1].Message)
	require.Equal(t, results.CategorySPBE, results.CategoryOf(got[1]))

	// The run carried on after the panic.
	require.True(t, got[2].Success, got[2].Message)
	require.Len(t, api.seen, 3)
}

func TestRunManagesSession(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	api := &fakeClient{
		routes: map[string]reply{
			"/api/auth/login":  {status: 200, body: `{"success":true,"token":"abc","user":{"username":"admin_pertamina","role":"pertamina-corporate"}}`},
			"/api/auth/logout": {status: 200, body: `{"success":true,"message":"Logout successful"}`},
		},
	}

	catalog := selectCases(t, "auth_login_valid", "auth_logout")

	outcome, err := runner.New(testConfig(t), api, catalog, &out).Run(t.Context())
	require.NoError(t, err)
	require.True(t, outcome.Summary.AllPassed())
	require.Equal(t, []string{"abc", ""}, api.tokens)
}

func TestRunKeepsSessionWhenLoginFails(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	api := &fakeClient{}

	_, err := runner.New(testConfig(t), api, selectCases(t, "auth_login_valid"), &out).Run(t.Context())
	require.NoError(t, err)
	require.Empty(t, api.tokens)
}

func TestRunReportFailure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cfg := testConfig(t)
	cfg.ReportPath = t.TempDir()

	outcome, err := runner.New(cfg, &fakeClient{}, selectCases(t, "api_root"), &out).Run(t.Context())
	require.ErrorIs(t, err, runner.ErrReport)
	require.NotNil(t, outcome)
	require.Equal(t, 1, outcome.Log.Len())
	require.Contains(t, out.String(), "Failed to save results")
}

func TestRunStopsWhenCancelled(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	cfg := testConfig(t)
	api := &fakeClient{}

	outcome, err := runner.New(cfg, api, selectCases(t), &out).Run(ctx)
	require.NoError(t, err)
	require.Zero(t, outcome.Log.Len())
	require.Nil(t, outcome.Summary.SuccessRate)
	require.Empty(t, api.seen)
	require.FileExists(t, cfg.ReportPath)
}
