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
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nscaledev/lpg-smoke/pkg/cases"
)

func newCasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List the test cases in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := cases.Default()
			if err != nil {
				return err
			}

			listing := table.New().Headers("#", "ID", "CATEGORY", "METHOD", "PATH", "EXPECT")

			for i, testCase := range catalog.Cases {
				listing.Row(strconv.Itoa(i+1), testCase.ID, string(testCase.Category), testCase.Request.Method, testCase.Path(), strconv.Itoa(testCase.Expect.Status))
			}

			fmt.Fprintln(cmd.OutOrStdout(), listing.Render())

			return nil
		},
	}
}
