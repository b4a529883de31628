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
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nscaledev/lpg-smoke/pkg/cases"
	"github.com/nscaledev/lpg-smoke/pkg/client"
	"github.com/nscaledev/lpg-smoke/pkg/config"
	"github.com/nscaledev/lpg-smoke/pkg/runner"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type runOptions struct {
	// cases restricts the run to the named case IDs.
	cases []string
}

func (o *runOptions) AddFlags(f *pflag.FlagSet) {
	f.StringSliceVar(&o.cases, "case", nil, "Only run the named case IDs, may be repeated")
}

func newRunCommand(config *config.Config) (*cobra.Command, *runOptions) {
	options := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the smoke tests against the configured portal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuite(cmd.Context(), config, options, cmd.OutOrStdout())
		},
	}

	options.AddFlags(cmd.Flags())

	return cmd, options
}

// runSuite executes the catalog and maps the outcome to an error: nil only
// when every case passed.
func runSuite(ctx context.Context, config *config.Config, options *runOptions, out io.Writer) error {
	log := log.FromContext(ctx)

	if err := config.Validate(); err != nil {
		return err
	}

	catalog, err := cases.Default()
	if err != nil {
		return err
	}

	catalog, err = catalog.Select(options.cases...)
	if err != nil {
		return err
	}

	api, err := client.New(config)
	if err != nil {
		return err
	}

	log.Info("running smoke tests", "baseURL", config.BaseURL, "cases", len(catalog.Cases))

	outcome, err := runner.New(config, api, catalog, out).Run(ctx)
	if err != nil {
		return err
	}

	log.Info("smoke tests complete", "passed", outcome.Summary.Passed, "failed", outcome.Summary.Failed)

	if !outcome.Summary.AllPassed() {
		return errTestsFailed
	}

	return nil
}
