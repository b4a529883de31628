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

package results

import (
	"slices"
	"strings"
)

// Category groups results by functional area for reporting.
type Category string

const (
	CategoryAPIRoot        Category = "API Root"
	CategoryAuthentication Category = "Authentication"
	CategorySPBE           Category = "SPBE Management"
	CategoryVehicles       Category = "Vehicle Management"
	CategoryDeliveries     Category = "Delivery Management"
	CategoryAlerts         Category = "Alert System"
	CategoryMetrics        Category = "Metrics & Analytics"
	CategoryRoutes         Category = "Route Optimization"
	CategoryErrorHandling  Category = "Error Handling"
)

// Categories returns every category in report order.
func Categories() []Category {
	return []Category{
		CategoryAPIRoot,
		CategoryAuthentication,
		CategorySPBE,
		CategoryVehicles,
		CategoryDeliveries,
		CategoryAlerts,
		CategoryMetrics,
		CategoryRoutes,
		CategoryErrorHandling,
	}
}

// Known reports whether the category is one of Categories.
func (c Category) Known() bool {
	return slices.Contains(Categories(), c)
}

// nameRules map a substring of a result name to its category, checked in order.
//
//nolint:gochecknoglobals
var nameRules = []struct {
	substring string
	category  Category
}{
	{"API Root", CategoryAPIRoot},
	{"Auth", CategoryAuthentication},
	{"SPBE", CategorySPBE},
	{"Vehicles", CategoryVehicles},
	{"Deliveries", CategoryDeliveries},
	{"Alerts", CategoryAlerts},
	{"Metrics", CategoryMetrics},
	{"Routes", CategoryRoutes},
}

// ClassifyName derives a category from a result name. It is only used for
// results that carry no explicit category, anything unmatched is error handling.
func ClassifyName(name string) Category {
	for _, rule := range nameRules {
		if strings.Contains(name, rule.substring) {
			return rule.category
		}
	}

	return CategoryErrorHandling
}

// CategoryOf returns the category a result is reported under.
func CategoryOf(result TestResult) Category {
	if result.Category.Known() {
		return result.Category
	}

	return ClassifyName(result.Name)
}

// CategoryGroup is the subsequence of a log belonging to one category.
type CategoryGroup struct {
	Category Category
	Results  []TestResult
	Passed   int
}

// Total is the number of results in the group.
func (g *CategoryGroup) Total() int {
	return len(g.Results)
}

// Group partitions the log into every category, in report order. Each result
// appears in exactly one group, in execution order.
func Group(log *Log) []CategoryGroup {
	categories := Categories()

	groups := make([]CategoryGroup, len(categories))
	index := make(map[Category]int, len(categories))

	for i, category := range categories {
		groups[i].Category = category
		index[category] = i
	}

	for _, result := range log.Results() {
		group := &groups[index[CategoryOf(result)]]
		group.Results = append(group.Results, result)

		if result.Success {
			group.Passed++
		}
	}

	return groups
}
