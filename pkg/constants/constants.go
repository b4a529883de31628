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

package constants

var (
	// Application is the application name.
	//nolint:gochecknoglobals
	Application = "lpg-smoke"

	// Version is the application version set via the Makefile.
	//nolint:gochecknoglobals
	Version = "0.0.0"

	// Revision is the git revision set via the Makefile.
	//nolint:gochecknoglobals
	Revision = "unknown"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "https://subsidy-portal.preview.emergentagent.com"

	// APIPrefix is prepended to every endpoint path.
	APIPrefix = "/api"

	// DefaultReportPath is where the results log is persisted.
	DefaultReportPath = "/app/backend_test_results.json"

	// ProductName is reported by the API root endpoint.
	ProductName = "LPG Subsidy Portal API"

	// APIVersion is reported by the API root endpoint.
	APIVersion = "1.0.0"
)
