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

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nscaledev/lpg-smoke/pkg/cases"
	"github.com/nscaledev/lpg-smoke/pkg/config"
	"github.com/nscaledev/lpg-smoke/pkg/constants"
	"github.com/nscaledev/lpg-smoke/pkg/results"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ErrReport is returned when the results file cannot be written.
var ErrReport = errors.New("failed to save results")

// Client is the API client a run drives.
type Client interface {
	cases.Client

	BaseURL() string
	SetAuthToken(token string)
}

// Outcome is everything a run produced.
type Outcome struct {
	Log     *results.Log
	Summary results.Summary
}

// Runner executes a catalog in order against one API.
type Runner struct {
	config  *config.Config
	client  Client
	catalog *cases.Catalog
	out     io.Writer
	styles  *results.Styles
}

func New(config *config.Config, client Client, catalog *cases.Catalog, out io.Writer) *Runner {
	return &Runner{
		config:  config,
		client:  client,
		catalog: catalog,
		out:     out,
		styles:  results.NewStyles(out, config.NoColor),
	}
}

// Run invokes every case, prints the report and persists the log. Case
// failures are part of the outcome, the only error is failing to persist.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	log := log.FromContext(ctx)

	recorder := results.NewRecorder(results.NewLog(), r.out, r.styles)

	fmt.Fprintln(r.out, r.styles.Header.Render(results.GlyphStart+" Starting LPG Subsidy Portal Backend API Tests"))
	fmt.Fprintf(r.out, "%s Testing API at: %s%s\n", results.GlyphTarget, r.client.BaseURL(), constants.APIPrefix)
	fmt.Fprintln(r.out, results.Rule())

	for _, testCase := range r.catalog.Cases {
		if err := ctx.Err(); err != nil {
			log.Info("run interrupted", "remaining", len(r.catalog.Cases)-recorder.Log().Len(), "reason", err.Error())
			break
		}

		result := r.invoke(ctx, testCase)

		recorder.Record(result)

		r.updateSession(ctx, testCase, result)
	}

	summary := results.Report(r.out, recorder.Log(), r.styles)

	outcome := &Outcome{
		Log:     recorder.Log(),
		Summary: summary,
	}

	if err := results.WriteFile(r.config.ReportPath, recorder.Log()); err != nil {
		fmt.Fprintf(r.out, "\n%s Failed to save results: %v\n", results.GlyphFail, err)

		return outcome, fmt.Errorf("%w: %w", ErrReport, err)
	}

	fmt.Fprintf(r.out, "\n%s Detailed results saved to: %s\n", results.GlyphSaved, r.config.ReportPath)

	return outcome, nil
}

// invoke runs a single case. A panic in the case body becomes a failing
// result named after the case so the run carries on.
func (r *Runner) invoke(ctx context.Context, testCase *cases.Case) (result results.TestResult) {
	log := log.FromContext(ctx)

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error(fmt.Errorf("%v", recovered), "case panicked", "case", testCase.ID)

			result = results.Fail(testCase.ID, testCase.Category, fmt.Sprintf("Test execution error: %v", recovered), nil)
		}
	}()

	return testCase.Execute(ctx, r.client)
}

// updateSession keeps the bearer token from a successful login and drops it
// after a successful logout.
func (r *Runner) updateSession(ctx context.Context, testCase *cases.Case, result results.TestResult) {
	if !result.Success {
		return
	}

	switch {
	case testCase.Authenticates:
		body, ok := result.ResponseData.(map[string]any)
		if !ok {
			return
		}

		if token, ok := body["token"].(string); ok && token != "" {
			log.FromContext(ctx).V(1).Info("session established", "case", testCase.ID)
			r.client.SetAuthToken(token)
		}
	case testCase.ClearsAuth:
		log.FromContext(ctx).V(1).Info("session cleared", "case", testCase.ID)
		r.client.SetAuthToken("")
	}
}
