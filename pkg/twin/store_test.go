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
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStockStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stock    float64
		capacity float64
		status   string
	}{
		{18000, 20000, StatusNormal},
		{8000, 20000, StatusNormal},
		{7999, 20000, StatusLow},
		{4000, 20000, StatusLow},
		{3999, 20000, StatusCritical},
		{0, 20000, StatusCritical},
		{10, 0, StatusCritical},
	}

	for _, test := range tests {
		require.Equal(t, test.status, stockStatus(test.stock, test.capacity), "%v/%v", test.stock, test.capacity)
	}
}

func TestStoreUpdatesAndReset(t *testing.T) {
	t.Parallel()

	store := NewStore()

	spbe, err := store.UpdateStock("SPBE-001", 2000)
	require.NoError(t, err)
	require.InDelta(t, 2000, spbe.Stock, 0)
	require.Equal(t, StatusCritical, spbe.Status)

	_, err = store.UpdateStock("SPBE-999", 1)
	require.ErrorIs(t, err, ErrSPBENotFound)

	vehicle, err := store.UpdateVehicle("TRK-001", &Position{Lat: -6.21, Lng: 106.85}, "")
	require.NoError(t, err)
	require.Equal(t, "active", vehicle.Status)
	require.NotNil(t, vehicle.LastUpdate)

	progress := 85.0

	delivery, err := store.UpdateDelivery("DEL-001", &progress, "", "")
	require.NoError(t, err)
	require.InDelta(t, 85, delivery.Progress, 0)
	require.Equal(t, "2 jam", delivery.ETA)

	store.Reset()

	spbe, err = store.GetSPBE("SPBE-001")
	require.NoError(t, err)
	require.InDelta(t, 15000, spbe.Stock, 0)
	require.Equal(t, StatusNormal, spbe.Status)

	vehicle, err = store.GetVehicle("TRK-001")
	require.NoError(t, err)
	require.Nil(t, vehicle.LastUpdate)
}

func TestStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewStore()

	list := store.ListSPBE()
	list[0].Stock = 1

	spbe, err := store.GetSPBE(list[0].ID)
	require.NoError(t, err)
	require.InDelta(t, 15000, spbe.Stock, 0)
}

func TestResolveAlertIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore()

	clock := time.Date(2026, 1, 25, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	first, err := store.ResolveAlert("ALT-001")
	require.NoError(t, err)
	require.True(t, first.Resolved)

	clock = clock.Add(time.Hour)

	second, err := store.ResolveAlert("ALT-001")
	require.NoError(t, err)
	require.True(t, second.Resolved)
	require.Equal(t, *first.ResolvedAt, *second.ResolvedAt)

	_, err = store.ResolveAlert("ALT-404")
	require.ErrorIs(t, err, ErrAlertNotFound)
}

func TestStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewStore()

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = store.UpdateStock("SPBE-002", float64(i*100))
			_ = store.ListSPBE()
		}()
	}

	wg.Wait()

	spbe, err := store.GetSPBE("SPBE-002")
	require.NoError(t, err)
	require.Equal(t, stockStatus(spbe.Stock, spbe.Capacity), spbe.Status)
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	handler := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("store corrupted")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/spbe", nil))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, "Internal server error", body.Message)
}

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, ok := newUser("admin_pertamina", "pertamina-corporate")
	require.True(t, ok)
	require.Equal(t, "Pertamina Corporate", user.Name)
	require.Equal(t, []string{"view_supply_chain", "manage_distribution", "view_analytics"}, user.Permissions)
	require.Contains(t, user.ID, "user_")

	_, ok = newUser("invalid_user", "invalid_role")
	require.False(t, ok)
}
