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
	"github.com/spf13/cobra"

	"github.com/nscaledev/lpg-smoke/pkg/twin"
)

func newServeCommand() *cobra.Command {
	var (
		options twin.Options
		listen  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory LPG Subsidy Portal API to run the tests against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := twin.New(options)
			if err != nil {
				return err
			}

			return server.Serve(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "Address to listen on")
	options.AddFlags(cmd.Flags())

	return cmd
}
