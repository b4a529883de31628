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

package endpoints

import (
	"fmt"
	"net/url"

	"github.com/nscaledev/lpg-smoke/pkg/constants"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// New creates a new Endpoints instance.
func New() *Endpoints {
	return &Endpoints{}
}

// Root returns the API information endpoint.
func (e *Endpoints) Root() string {
	return constants.APIPrefix
}

// Authentication endpoints.
func (e *Endpoints) Login() string {
	return constants.APIPrefix + "/auth/login"
}

func (e *Endpoints) Logout() string {
	return constants.APIPrefix + "/auth/logout"
}

// SPBE endpoints.
func (e *Endpoints) ListSPBE() string {
	return constants.APIPrefix + "/spbe"
}

func (e *Endpoints) GetSPBE(spbeID string) string {
	return fmt.Sprintf("%s/spbe/%s", constants.APIPrefix, url.PathEscape(spbeID))
}

func (e *Endpoints) UpdateSPBEStock() string {
	return constants.APIPrefix + "/spbe/update-stock"
}

// Vehicle endpoints.
func (e *Endpoints) ListVehicles() string {
	return constants.APIPrefix + "/vehicles"
}

func (e *Endpoints) GetVehicle(vehicleID string) string {
	return fmt.Sprintf("%s/vehicles/%s", constants.APIPrefix, url.PathEscape(vehicleID))
}

func (e *Endpoints) UpdateVehiclePosition() string {
	return constants.APIPrefix + "/vehicles/update-position"
}

// Delivery endpoints.
func (e *Endpoints) ListDeliveries() string {
	return constants.APIPrefix + "/deliveries"
}

func (e *Endpoints) GetDelivery(deliveryID string) string {
	return fmt.Sprintf("%s/deliveries/%s", constants.APIPrefix, url.PathEscape(deliveryID))
}

func (e *Endpoints) UpdateDeliveryProgress() string {
	return constants.APIPrefix + "/deliveries/update-progress"
}

// Alert endpoints.
func (e *Endpoints) ListAlerts() string {
	return constants.APIPrefix + "/alerts"
}

func (e *Endpoints) ResolveAlert() string {
	return constants.APIPrefix + "/alerts/resolve"
}

// Metrics endpoints.
func (e *Endpoints) Metrics() string {
	return constants.APIPrefix + "/metrics"
}

func (e *Endpoints) SupplyChainMetrics() string {
	return constants.APIPrefix + "/metrics/supply-chain"
}

func (e *Endpoints) OperationalMetrics() string {
	return constants.APIPrefix + "/metrics/operational"
}

// Route optimization endpoints.
func (e *Endpoints) OptimizeRoute() string {
	return constants.APIPrefix + "/routes/optimize"
}

// Metadata endpoints.
func (e *Endpoints) OpenAPISpec() string {
	return constants.APIPrefix + "/openapi.json"
}

// Resolve expands a catalog path template into a concrete path. Templates are
// either a named endpoint ("spbe.get") with an optional identifier, or a raw
// path that already starts with the API prefix.
func (e *Endpoints) Resolve(name, id string) (string, bool) {
	switch name {
	case "root":
		return e.Root(), true
	case "auth.login":
		return e.Login(), true
	case "auth.logout":
		return e.Logout(), true
	case "spbe.list":
		return e.ListSPBE(), true
	case "spbe.get":
		return e.GetSPBE(id), true
	case "spbe.update-stock":
		return e.UpdateSPBEStock(), true
	case "vehicles.list":
		return e.ListVehicles(), true
	case "vehicles.get":
		return e.GetVehicle(id), true
	case "vehicles.update-position":
		return e.UpdateVehiclePosition(), true
	case "deliveries.list":
		return e.ListDeliveries(), true
	case "deliveries.get":
		return e.GetDelivery(id), true
	case "deliveries.update-progress":
		return e.UpdateDeliveryProgress(), true
	case "alerts.list":
		return e.ListAlerts(), true
	case "alerts.resolve":
		return e.ResolveAlert(), true
	case "metrics":
		return e.Metrics(), true
	case "metrics.supply-chain":
		return e.SupplyChainMetrics(), true
	case "metrics.operational":
		return e.OperationalMetrics(), true
	case "routes.optimize":
		return e.OptimizeRoute(), true
	case "openapi":
		return e.OpenAPISpec(), true
	}

	return "", false
}
