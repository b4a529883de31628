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

package cases

import (
	"github.com/expr-lang/expr/vm"

	"github.com/nscaledev/lpg-smoke/pkg/results"
)

// Shape is the required type of a response's data member.
type Shape string

const (
	// ShapeAny places no requirement on data.
	ShapeAny Shape = ""
	// ShapeObject requires data to be a JSON object.
	ShapeObject Shape = "object"
	// ShapeList requires data to be a non-empty JSON array.
	ShapeList Shape = "list"
)

// Default failure messages, used when a case does not name its own.
const (
	DefaultFormatFailure = "Invalid response format"
	DefaultEmptyFailure  = "No data returned"
	DefaultKeysFailure   = "Missing required fields"

	defaultTransportFailure = "Request error"
)

// Request describes the call a case makes.
type Request struct {
	Method string `yaml:"method"`
	// Endpoint is a named endpoint, e.g. "spbe.get".
	Endpoint string `yaml:"endpoint,omitempty"`
	// ID is substituted into endpoints that take an identifier.
	ID string `yaml:"id,omitempty"`
	// Path is a raw path, used in place of Endpoint.
	Path string         `yaml:"path,omitempty"`
	Body map[string]any `yaml:"body,omitempty"`
}

// Check is a boolean expression over the response.
type Check struct {
	Expr    string `yaml:"expr"`
	Failure string `yaml:"failure"`

	program *vm.Program
}

// Failures names the messages used when a shape requirement is not met.
type Failures struct {
	Format string `yaml:"format,omitempty"`
	Empty  string `yaml:"empty,omitempty"`
	Keys   string `yaml:"keys,omitempty"`
}

// Expect is what a correct response looks like.
type Expect struct {
	Status int `yaml:"status"`
	// Success, when set, is the required value of body.success.
	Success *bool `yaml:"success,omitempty"`
	Data    Shape `yaml:"data,omitempty"`
	// Keys must be present on the first list element, the data object, or
	// the body, depending on Data.
	Keys     []string `yaml:"keys,omitempty"`
	Checks   []Check  `yaml:"checks,omitempty"`
	Failures Failures `yaml:"failures,omitempty"`
}

// Case is a single named check of one API behavior.
type Case struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	Category results.Category `yaml:"category"`
	Request  Request          `yaml:"request"`
	Expect   Expect           `yaml:"expect"`
	Pass     string           `yaml:"pass,omitempty"`
	PassExpr string           `yaml:"passExpr,omitempty"`
	// Authenticates marks a login, the returned token is kept for later cases.
	Authenticates bool `yaml:"authenticates,omitempty"`
	// ClearsAuth marks a logout, any kept token is dropped.
	ClearsAuth bool `yaml:"clearsAuth,omitempty"`
	// TransportFailure prefixes the message when no response was received.
	TransportFailure string `yaml:"transportFailure,omitempty"`

	path        string
	passProgram *vm.Program
}

// Path returns the concrete request path, valid once the case is compiled.
func (c *Case) Path() string {
	return c.path
}

func (c *Case) formatFailure() string {
	if c.Expect.Failures.Format != "" {
		return c.Expect.Failures.Format
	}

	return DefaultFormatFailure
}

func (c *Case) emptyFailure() string {
	if c.Expect.Failures.Empty != "" {
		return c.Expect.Failures.Empty
	}

	return DefaultEmptyFailure
}

func (c *Case) keysFailure() string {
	if c.Expect.Failures.Keys != "" {
		return c.Expect.Failures.Keys
	}

	return DefaultKeysFailure
}

func (c *Case) transportFailure() string {
	if c.TransportFailure != "" {
		return c.TransportFailure
	}

	return defaultTransportFailure
}
