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

package twin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/nscaledev/lpg-smoke/pkg/constants"
)

// document describes the given routes as OpenAPI.
func document(routes []route) *openapi3.T {
	paths := openapi3.NewPaths()

	for _, route := range routes {
		item := paths.Find(route.pattern)
		if item == nil {
			item = &openapi3.PathItem{}
			paths.Set(route.pattern, item)
		}

		item.SetOperation(route.method, operation(route))
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   constants.ProductName,
			Version: constants.APIVersion,
		},
		Paths: paths,
	}
}

func operation(route route) *openapi3.Operation {
	envelope := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema())

	op := &openapi3.Operation{
		OperationID: route.operationID,
		Summary:     route.summary,
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription(route.summary).WithJSONSchema(envelope),
			}),
		),
	}

	if strings.Contains(route.pattern, "{id}") {
		op.Parameters = openapi3.Parameters{
			{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())},
		}

		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Not found").WithJSONSchema(envelope),
		})
	}

	if route.method == http.MethodPost {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithJSONSchema(openapi3.NewObjectSchema()),
		}

		op.Responses.Set("400", &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Invalid request body").WithJSONSchema(envelope),
		})
	}

	return op
}

func renderDocument(routes []route) ([]byte, error) {
	data, err := json.Marshal(document(routes))
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi document: %w", err)
	}

	return data, nil
}
