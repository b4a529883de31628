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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nscaledev/lpg-smoke/pkg/config"
	"github.com/nscaledev/lpg-smoke/pkg/constants"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// errTestsFailed signals a completed run with failures, the report has
// already said everything there is to say.
var errTestsFailed = errors.New("one or more tests failed")

func main() {
	ctx := cr.SetupSignalHandler()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	config := config.FromEnvironment()

	run, runOptions := newRunCommand(config)

	root := &cobra.Command{
		Use:           constants.Application,
		Short:         "Smoke tests for the LPG Subsidy Portal API",
		Version:       fmt.Sprintf("%s (%s)", constants.Version, constants.Revision),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd, config.DebugLogging)
		},
		// Running the suite is the default action.
		RunE: run.RunE,
	}

	config.AddFlags(root.PersistentFlags())
	runOptions.AddFlags(root.Flags())

	root.AddCommand(run)
	root.AddCommand(newServeCommand())
	root.AddCommand(newCasesCommand())

	return root
}

// setupLogging installs the zap backed logger and makes it available to
// everything downstream of the command's context.
func setupLogging(cmd *cobra.Command, debug bool) {
	log.SetLogger(zap.New(zap.UseDevMode(debug), zap.WriteTo(cmd.ErrOrStderr())))

	logger := log.Log.WithName(cmd.Name())
	logger.V(1).Info("starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	cmd.SetContext(log.IntoContext(cmd.Context(), logger))
}
