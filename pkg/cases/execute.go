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
	"context"
	"fmt"
	"net/http"

	"github.com/expr-lang/expr"

	"github.com/nscaledev/lpg-smoke/pkg/client"
	"github.com/nscaledev/lpg-smoke/pkg/results"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Client issues requests on behalf of a case.
type Client interface {
	Do(ctx context.Context, method, path string, body any) (*client.Response, error)
}

// Env is what check and pass expressions are evaluated against.
type Env struct {
	Status int `expr:"status"`
	Body   any `expr:"body"`
	Data   any `expr:"data"`
}

// Execute runs the case against the API and returns exactly one result.
// API misbehavior and transport faults are reported as failing results, never
// as errors.
//
//nolint:cyclop
func (c *Case) Execute(ctx context.Context, api Client) results.TestResult {
	log := log.FromContext(ctx).WithValues("case", c.ID)

	var body any
	if c.Request.Body != nil {
		body = c.Request.Body
	}

	response, err := api.Do(ctx, c.Request.Method, c.path, body)
	if err != nil {
		return c.fail(fmt.Sprintf("%s: %v", c.transportFailure(), err), nil)
	}

	log.V(1).Info("response received", "status", response.StatusCode, "traceID", response.TraceID)

	if response.StatusCode != c.Expect.Status {
		return c.fail(c.statusFailure(response.StatusCode), response.Text())
	}

	if !response.IsJSON {
		return c.fail("Invalid JSON response", response.Text())
	}

	object, ok := response.Object()
	if !ok {
		return c.fail(c.formatFailure(), response.JSON)
	}

	if c.Expect.Success != nil {
		success, _ := object["success"].(bool)
		if success != *c.Expect.Success {
			return c.fail(c.formatFailure(), object)
		}
	}

	target := any(object)

	switch c.Expect.Data {
	case ShapeObject:
		data, ok := object["data"].(map[string]any)
		if !ok {
			return c.fail(c.formatFailure(), object)
		}

		target = data
	case ShapeList:
		value, ok := object["data"]
		if !ok {
			return c.fail(c.formatFailure(), object)
		}

		list, ok := value.([]any)
		if !ok || len(list) == 0 {
			return c.fail(c.emptyFailure(), object)
		}

		target = list[0]
	case ShapeAny:
	}

	if !hasKeys(target, c.Expect.Keys) {
		return c.fail(c.keysFailure(), object)
	}

	env := Env{
		Status: response.StatusCode,
		Body:   object,
		Data:   object["data"],
	}

	for i := range c.Expect.Checks {
		check := &c.Expect.Checks[i]

		passed, err := evalCheck(check, env)
		if err != nil {
			log.V(1).Info("check did not evaluate", "expr", check.Expr, "error", err.Error())
		}

		if !passed {
			return c.fail(check.Failure, object)
		}
	}

	return results.Pass(c.Name, c.Category, c.passMessage(ctx, env), object)
}

func (c *Case) fail(message string, responseData any) results.TestResult {
	return results.Fail(c.Name, c.Category, message, responseData)
}

// statusFailure describes an unexpected status. Cases expecting success
// report the bare status, cases expecting an error name what they wanted.
func (c *Case) statusFailure(status int) string {
	if c.Expect.Status < http.StatusBadRequest {
		return fmt.Sprintf("HTTP %d", status)
	}

	return fmt.Sprintf("Expected %d, got HTTP %d", c.Expect.Status, status)
}

func (c *Case) passMessage(ctx context.Context, env Env) string {
	if c.passProgram == nil {
		return c.Pass
	}

	output, err := expr.Run(c.passProgram, env)
	if err != nil {
		log.FromContext(ctx).Error(err, "pass message did not evaluate", "case", c.ID)
		return c.Pass
	}

	message, ok := output.(string)
	if !ok {
		return c.Pass
	}

	return message
}

func evalCheck(check *Check, env Env) (bool, error) {
	program := check.program
	if program == nil {
		compiled, err := expr.Compile(check.Expr, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return false, fmt.Errorf("compile check %q: %w", check.Expr, err)
		}

		program = compiled
	}

	output, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("eval check %q: %w", check.Expr, err)
	}

	passed, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("check %q did not return bool (got %T)", check.Expr, output)
	}

	return passed, nil
}

func hasKeys(target any, keys []string) bool {
	if len(keys) == 0 {
		return true
	}

	object, ok := target.(map[string]any)
	if !ok {
		return false
	}

	for _, key := range keys {
		if _, ok := object[key]; !ok {
			return false
		}
	}

	return true
}
