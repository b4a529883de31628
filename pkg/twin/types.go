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
	"time"
)

// SPBE status levels, derived from stock as a share of capacity.
const (
	StatusCritical = "critical"
	StatusLow      = "low"
	StatusNormal   = "normal"
)

// SPBE is a bulk LPG filling station.
type SPBE struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Stock      float64   `json:"stock"`
	Capacity   float64   `json:"capacity"`
	Status     string    `json:"status"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	LastUpdate time.Time `json:"lastUpdate"`
}

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Vehicle is a delivery truck.
type Vehicle struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Position    Position   `json:"position"`
	Destination string     `json:"destination"`
	Cargo       float64    `json:"cargo"`
	Driver      string     `json:"driver"`
	LastUpdate  *time.Time `json:"lastUpdate,omitempty"`
}

type Delivery struct {
	ID        string  `json:"id"`
	Route     string  `json:"route"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	ETA       string  `json:"eta"`
	Driver    string  `json:"driver"`
	VehicleID string  `json:"vehicleId"`
}

type Alert struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Timestamp  time.Time  `json:"timestamp"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

type SupplyChainMetrics struct {
	TotalDeliveries      int     `json:"totalDeliveries"`
	OnTimeDelivery       float64 `json:"onTimeDelivery"`
	AverageDeliveryTime  float64 `json:"averageDeliveryTime"`
	TotalVolume          int     `json:"totalVolume"`
	CostPerLiter         float64 `json:"costPerLiter"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
}

type OperationalMetrics struct {
	ActiveVehicles      int     `json:"activeVehicles"`
	MaintenanceVehicles int     `json:"maintenanceVehicles"`
	TotalCapacity       int     `json:"totalCapacity"`
	CurrentStock        int     `json:"currentStock"`
	UtilizationRate     float64 `json:"utilizationRate"`
	AlertsCount         int     `json:"alertsCount"`
}

type Metrics struct {
	SupplyChain SupplyChainMetrics `json:"supplyChain"`
	Operational OperationalMetrics `json:"operational"`
}

// User is the identity returned by a login.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// OptimizedRoute is the result of a route optimization request.
type OptimizedRoute struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Waypoints   []string   `json:"waypoints"`
	Distance    string     `json:"distance"`
	Duration    string     `json:"duration"`
	FuelCost    string     `json:"fuel_cost"`
	Optimized   bool       `json:"optimized"`
	Status      string     `json:"status"`
	Path        []Position `json:"path"`
}

// envelope is the body every portal endpoint answers with.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

type infoResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}
