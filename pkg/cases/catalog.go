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
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/spjmurray/go-util/pkg/set"
	"gopkg.in/yaml.v3"

	"github.com/nscaledev/lpg-smoke/pkg/constants"
	"github.com/nscaledev/lpg-smoke/pkg/endpoints"
	"github.com/nscaledev/lpg-smoke/pkg/results"
)

var (
	// ErrCatalog is returned when a catalog cannot be parsed or is inconsistent.
	ErrCatalog = errors.New("invalid case catalog")

	// ErrUnknownCase is returned when a selection names a case that does not exist.
	ErrUnknownCase = errors.New("unknown case")
)

//go:embed catalog.yaml
var defaultCatalog []byte

//nolint:gochecknoglobals
var methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Catalog is the ordered list of cases a run executes.
type Catalog struct {
	Cases []*Case `yaml:"cases"`
}

// Default returns the built in catalog covering the portal API.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// Parse reads and compiles a catalog. Unknown fields are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var catalog Catalog

	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalog, err)
	}

	if err := catalog.compile(endpoints.New()); err != nil {
		return nil, err
	}

	return &catalog, nil
}

// IDs returns the case identifiers in execution order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Cases))

	for i, testCase := range c.Cases {
		ids[i] = testCase.ID
	}

	return ids
}

// Select returns a catalog with only the named cases, keeping catalog order.
// No names selects everything.
func (c *Catalog) Select(ids ...string) (*Catalog, error) {
	if len(ids) == 0 {
		return c, nil
	}

	requested := set.New[string](ids...)
	available := set.New[string](c.IDs()...)
	missing := requested.Difference(available)

	unknown := slices.Sorted(missing.All())
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCase, strings.Join(unknown, ", "))
	}

	selected := &Catalog{}

	for _, testCase := range c.Cases {
		if slices.Contains(ids, testCase.ID) {
			selected.Cases = append(selected.Cases, testCase)
		}
	}

	return selected, nil
}

//nolint:cyclop
func (c *Catalog) compile(e *endpoints.Endpoints) error {
	var errs []error

	seen := map[string]bool{}
	categories := make([]string, 0, len(c.Cases))

	for i, testCase := range c.Cases {
		if testCase.ID == "" {
			errs = append(errs, fmt.Errorf("case %d: id is required", i))
			continue
		}

		if seen[testCase.ID] {
			errs = append(errs, fmt.Errorf("case %s: duplicate id", testCase.ID))
		}

		seen[testCase.ID] = true

		categories = append(categories, string(testCase.Category))

		if err := testCase.compile(e); err != nil {
			errs = append(errs, fmt.Errorf("case %s: %w", testCase.ID, err))
		}
	}

	known := make([]string, 0, len(results.Categories()))
	for _, category := range results.Categories() {
		known = append(known, string(category))
	}

	used := set.New[string](categories...)
	declared := set.New[string](known...)
	undeclared := used.Difference(declared)

	for category := range undeclared.All() {
		errs = append(errs, fmt.Errorf("unknown category %q", category))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrCatalog, errors.Join(errs...))
	}

	return nil
}

//nolint:cyclop
func (c *Case) compile(e *endpoints.Endpoints) error {
	if c.Name == "" {
		return errors.New("name is required")
	}

	if !slices.Contains(methods, c.Request.Method) {
		return fmt.Errorf("unsupported method %q", c.Request.Method)
	}

	switch {
	case c.Request.Path != "" && c.Request.Endpoint != "":
		return errors.New("endpoint and path are mutually exclusive")
	case c.Request.Path != "":
		if !strings.HasPrefix(c.Request.Path, constants.APIPrefix) {
			return fmt.Errorf("path %q is outside %s", c.Request.Path, constants.APIPrefix)
		}

		c.path = c.Request.Path
	default:
		path, ok := e.Resolve(c.Request.Endpoint, c.Request.ID)
		if !ok {
			return fmt.Errorf("unknown endpoint %q", c.Request.Endpoint)
		}

		c.path = path
	}

	if c.Expect.Status < 100 || c.Expect.Status > 599 {
		return fmt.Errorf("status %d out of range", c.Expect.Status)
	}

	switch c.Expect.Data {
	case ShapeAny, ShapeObject, ShapeList:
	default:
		return fmt.Errorf("unknown data shape %q", c.Expect.Data)
	}

	for i := range c.Expect.Checks {
		check := &c.Expect.Checks[i]

		program, err := expr.Compile(check.Expr, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile check %q: %w", check.Expr, err)
		}

		check.program = program
	}

	switch {
	case c.PassExpr != "":
		program, err := expr.Compile(c.PassExpr, expr.Env(Env{}), expr.AsKind(reflect.String))
		if err != nil {
			return fmt.Errorf("compile pass message %q: %w", c.PassExpr, err)
		}

		c.passProgram = program
	case c.Pass == "":
		return errors.New("a pass message is required")
	}

	return nil
}
