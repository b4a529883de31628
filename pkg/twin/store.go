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
	"errors"
	"slices"
	"sync"
	"time"
)

var (
	ErrSPBENotFound     = errors.New("SPBE not found")
	ErrVehicleNotFound  = errors.New("Vehicle not found") //nolint:stylecheck
	ErrDeliveryNotFound = errors.New("Delivery not found") //nolint:stylecheck
	ErrAlertNotFound    = errors.New("Alert not found")    //nolint:stylecheck
)

// Store holds the portal's logistics state. It is safe for concurrent use,
// every accessor returns copies.
type Store struct {
	lock sync.RWMutex

	spbe       []SPBE
	vehicles   []Vehicle
	deliveries []Delivery
	alerts     []Alert
	metrics    Metrics

	// now is replaceable for tests.
	now func() time.Time
}

// NewStore returns a store holding the seed data.
func NewStore() *Store {
	s := &Store{
		now: time.Now,
	}

	s.Reset()

	return s
}

// Reset restores the seed data, discarding every update.
func (s *Store) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.now()

	s.spbe = []SPBE{
		{ID: "SPBE-001", Name: "SPBE Jakarta Selatan", Location: "Jakarta", Stock: 15000, Capacity: 20000, Status: StatusNormal, Lat: -6.2615, Lng: 106.7815, LastUpdate: now},
		{ID: "SPBE-002", Name: "SPBE Surabaya Timur", Location: "Surabaya", Stock: 8500, Capacity: 15000, Status: StatusLow, Lat: -7.2756, Lng: 112.7378, LastUpdate: now},
		{ID: "SPBE-003", Name: "SPBE Bandung Utara", Location: "Bandung", Stock: 12000, Capacity: 18000, Status: StatusNormal, Lat: -6.9147, Lng: 107.6098, LastUpdate: now},
		{ID: "SPBE-004", Name: "SPBE Medan Barat", Location: "Medan", Stock: 2500, Capacity: 12000, Status: StatusCritical, Lat: 3.5952, Lng: 98.6722, LastUpdate: now},
		{ID: "SPBE-005", Name: "SPBE Makassar", Location: "Makassar", Stock: 9800, Capacity: 14000, Status: StatusNormal, Lat: -5.1477, Lng: 119.4327, LastUpdate: now},
	}

	s.vehicles = []Vehicle{
		{ID: "TRK-001", Name: "Truck Jakarta-01", Status: "active", Position: Position{Lat: -6.2088, Lng: 106.8456}, Destination: "SPBE Jakarta Selatan", Cargo: 5000, Driver: "Ahmad Sutrisno"},
		{ID: "TRK-002", Name: "Truck Surabaya-01", Status: "active", Position: Position{Lat: -7.2504, Lng: 112.7688}, Destination: "SPBE Surabaya Timur", Cargo: 4200, Driver: "Budi Hartono"},
		{ID: "TRK-003", Name: "Truck Bandung-01", Status: "maintenance", Position: Position{Lat: -6.9175, Lng: 107.6191}, Destination: "Depot Bandung", Cargo: 0, Driver: "Candra Wijaya"},
		{ID: "TRK-004", Name: "Truck Medan-01", Status: "active", Position: Position{Lat: 3.5833, Lng: 98.6667}, Destination: "SPBE Medan Barat", Cargo: 6000, Driver: "Dedi Prakoso"},
	}

	s.deliveries = []Delivery{
		{ID: "DEL-001", Route: "Depot Jakarta → SPBE Jakarta Selatan", Status: "in-transit", Progress: 75, ETA: "2 jam", Driver: "Ahmad Sutrisno", VehicleID: "TRK-001"},
		{ID: "DEL-002", Route: "Depot Surabaya → SPBE Surabaya Timur", Status: "delivered", Progress: 100, ETA: "Selesai", Driver: "Budi Hartono", VehicleID: "TRK-002"},
		{ID: "DEL-003", Route: "Depot Bandung → SPBE Bandung Utara", Status: "scheduled", Progress: 0, ETA: "4 jam", Driver: "Candra Wijaya", VehicleID: "TRK-003"},
		{ID: "DEL-004", Route: "Depot Medan → SPBE Medan Barat", Status: "urgent", Progress: 25, ETA: "6 jam", Driver: "Dedi Prakoso", VehicleID: "TRK-004"},
	}

	s.alerts = []Alert{
		{ID: "ALT-001", Type: "critical", Title: "Stok Kritis - SPBE Medan Barat", Message: "Stok LPG di SPBE Medan Barat mencapai level kritis (20%)", Timestamp: now},
		{ID: "ALT-002", Type: "warning", Title: "Keterlambatan Pengiriman", Message: "Truck TRK-003 mengalami keterlambatan 2 jam dari jadwal", Timestamp: now},
		{ID: "ALT-003", Type: "info", Title: "Maintenance Terjadwal", Message: "SPBE Bandung Utara akan maintenance sistem tanggal 25 Januari", Timestamp: now, Resolved: true},
	}

	s.metrics = Metrics{
		SupplyChain: SupplyChainMetrics{
			TotalDeliveries:      142,
			OnTimeDelivery:       89.5,
			AverageDeliveryTime:  4.2,
			TotalVolume:          125000,
			CostPerLiter:         0.85,
			CustomerSatisfaction: 4.7,
		},
		Operational: OperationalMetrics{
			ActiveVehicles:      12,
			MaintenanceVehicles: 3,
			TotalCapacity:       95000,
			CurrentStock:        67500,
			UtilizationRate:     71.1,
			AlertsCount:         5,
		},
	}
}

// stockStatus grades stock against capacity.
func stockStatus(stock, capacity float64) string {
	if capacity <= 0 {
		return StatusCritical
	}

	switch utilization := stock / capacity * 100; {
	case utilization < 20:
		return StatusCritical
	case utilization < 40:
		return StatusLow
	default:
		return StatusNormal
	}
}

func (s *Store) ListSPBE() []SPBE {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return slices.Clone(s.spbe)
}

func (s *Store) GetSPBE(id string) (SPBE, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	i := slices.IndexFunc(s.spbe, func(spbe SPBE) bool { return spbe.ID == id })
	if i < 0 {
		return SPBE{}, ErrSPBENotFound
	}

	return s.spbe[i], nil
}

// UpdateStock sets an SPBE's stock and regrades its status.
func (s *Store) UpdateStock(id string, stock float64) (SPBE, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.spbe, func(spbe SPBE) bool { return spbe.ID == id })
	if i < 0 {
		return SPBE{}, ErrSPBENotFound
	}

	spbe := &s.spbe[i]
	spbe.Stock = stock
	spbe.Status = stockStatus(stock, spbe.Capacity)
	spbe.LastUpdate = s.now()

	return *spbe, nil
}

func (s *Store) ListVehicles() []Vehicle {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return slices.Clone(s.vehicles)
}

func (s *Store) GetVehicle(id string) (Vehicle, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	i := slices.IndexFunc(s.vehicles, func(vehicle Vehicle) bool { return vehicle.ID == id })
	if i < 0 {
		return Vehicle{}, ErrVehicleNotFound
	}

	return s.vehicles[i], nil
}

// UpdateVehicle moves a vehicle and optionally changes its status.
func (s *Store) UpdateVehicle(id string, position *Position, status string) (Vehicle, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.vehicles, func(vehicle Vehicle) bool { return vehicle.ID == id })
	if i < 0 {
		return Vehicle{}, ErrVehicleNotFound
	}

	vehicle := &s.vehicles[i]

	if position != nil {
		vehicle.Position = *position
	}

	if status != "" {
		vehicle.Status = status
	}

	now := s.now()
	vehicle.LastUpdate = &now

	return *vehicle, nil
}

func (s *Store) ListDeliveries() []Delivery {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return slices.Clone(s.deliveries)
}

func (s *Store) GetDelivery(id string) (Delivery, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	i := slices.IndexFunc(s.deliveries, func(delivery Delivery) bool { return delivery.ID == id })
	if i < 0 {
		return Delivery{}, ErrDeliveryNotFound
	}

	return s.deliveries[i], nil
}

// UpdateDelivery records progress on a delivery. Empty values are left as is.
func (s *Store) UpdateDelivery(id string, progress *float64, status, eta string) (Delivery, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.deliveries, func(delivery Delivery) bool { return delivery.ID == id })
	if i < 0 {
		return Delivery{}, ErrDeliveryNotFound
	}

	delivery := &s.deliveries[i]

	if progress != nil {
		delivery.Progress = *progress
	}

	if status != "" {
		delivery.Status = status
	}

	if eta != "" {
		delivery.ETA = eta
	}

	return *delivery, nil
}

func (s *Store) ListAlerts() []Alert {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return slices.Clone(s.alerts)
}

// ResolveAlert marks an alert resolved. Resolving twice keeps the first
// resolution time.
func (s *Store) ResolveAlert(id string) (Alert, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.alerts, func(alert Alert) bool { return alert.ID == id })
	if i < 0 {
		return Alert{}, ErrAlertNotFound
	}

	alert := &s.alerts[i]

	if alert.ResolvedAt == nil {
		now := s.now()
		alert.ResolvedAt = &now
	}

	alert.Resolved = true

	return *alert, nil
}

func (s *Store) Metrics() Metrics {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.metrics
}
