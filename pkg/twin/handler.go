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

//nolint:revive
package twin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nscaledev/lpg-smoke/pkg/constants"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	messageInvalidBody   = "Invalid request body"
	messageInvalidLogin  = "Invalid credentials"
	messageNotFound      = "Endpoint not found"
	messageInternalError = "Internal server error"
)

type Handler struct {
	// store holds the logistics state.
	store *Store

	// sessions issues login tokens.
	sessions *Sessions

	// document is the rendered OpenAPI description of the routes.
	document []byte
}

func NewHandler(store *Store, sessions *Sessions) (*Handler, error) {
	h := &Handler{
		store:    store,
		sessions: sessions,
	}

	document, err := renderDocument(h.routes())
	if err != nil {
		return nil, err
	}

	h.document = document

	return h, nil
}

// route is one portal endpoint, used both to mount the router and to
// describe the API.
type route struct {
	method      string
	pattern     string
	operationID string
	summary     string
	handler     http.HandlerFunc
}

func (h *Handler) routes() []route {
	return []route{
		{http.MethodGet, "/api", "getInfo", "API information", h.GetInfo},
		{http.MethodGet, "/api/openapi.json", "getOpenAPI", "OpenAPI description", h.GetOpenAPI},
		{http.MethodPost, "/api/auth/login", "login", "Log in as a stakeholder", h.PostLogin},
		{http.MethodPost, "/api/auth/logout", "logout", "End the session", h.PostLogout},
		{http.MethodGet, "/api/spbe", "listSPBE", "List SPBE", h.ListSPBE},
		{http.MethodGet, "/api/spbe/{id}", "getSPBE", "Get an SPBE", h.GetSPBE},
		{http.MethodPost, "/api/spbe/update-stock", "updateSPBEStock", "Update SPBE stock", h.PostUpdateStock},
		{http.MethodGet, "/api/vehicles", "listVehicles", "List vehicles", h.ListVehicles},
		{http.MethodGet, "/api/vehicles/{id}", "getVehicle", "Get a vehicle", h.GetVehicle},
		{http.MethodPost, "/api/vehicles/update-position", "updateVehiclePosition", "Update a vehicle's position", h.PostUpdatePosition},
		{http.MethodGet, "/api/deliveries", "listDeliveries", "List deliveries", h.ListDeliveries},
		{http.MethodGet, "/api/deliveries/{id}", "getDelivery", "Get a delivery", h.GetDelivery},
		{http.MethodPost, "/api/deliveries/update-progress", "updateDeliveryProgress", "Update delivery progress", h.PostUpdateProgress},
		{http.MethodGet, "/api/alerts", "listAlerts", "List alerts", h.ListAlerts},
		{http.MethodPost, "/api/alerts/resolve", "resolveAlert", "Resolve an alert", h.PostResolveAlert},
		{http.MethodGet, "/api/metrics", "getMetrics", "All metrics", h.GetMetrics},
		{http.MethodGet, "/api/metrics/supply-chain", "getSupplyChainMetrics", "Supply chain metrics", h.GetSupplyChainMetrics},
		{http.MethodGet, "/api/metrics/operational", "getOperationalMetrics", "Operational metrics", h.GetOperationalMetrics},
		{http.MethodPost, "/api/routes/optimize", "optimizeRoute", "Optimize a delivery route", h.PostOptimizeRoute},
	}
}

// Mount registers every route on the router. Anything else is answered with
// the portal's not found envelope.
func (h *Handler) Mount(r chi.Router) {
	for _, route := range h.routes() {
		r.Method(route.method, route.pattern, route.handler)
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	h.setUncacheable(w)

	writeJSON(w, status, v)
}

func (h *Handler) writeData(w http.ResponseWriter, message string, data any) {
	h.writeJSON(w, http.StatusOK, &envelope{Success: true, Message: message, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &envelope{Success: false, Message: message})
}

// writeLookupError maps store lookups to a 404 carrying the entity message.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	for _, notFound := range []error{ErrSPBENotFound, ErrVehicleNotFound, ErrDeliveryNotFound, ErrAlertNotFound} {
		if errors.Is(err, notFound) {
			writeError(w, http.StatusNotFound, notFound.Error())
			return
		}
	}

	log.FromContext(r.Context()).Error(err, "unhandled store error")

	writeError(w, http.StatusInternalServerError, messageInternalError)
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, messageNotFound)
}

func (h *Handler) GetInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, &infoResponse{
		Message: constants.ProductName,
		Version: constants.APIVersion,
		Endpoints: []string{
			"/api/auth/login",
			"/api/auth/logout",
			"/api/spbe",
			"/api/vehicles",
			"/api/deliveries",
			"/api/alerts",
			"/api/metrics",
			"/api/routes/optimize",
		},
	})
}

func (h *Handler) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(h.document)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	log := log.FromContext(r.Context())

	var request loginRequest

	if err := readJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, messageInvalidBody)
		return
	}

	if request.Username == "" || request.Password == "" || request.Role == "" {
		writeError(w, http.StatusUnauthorized, messageInvalidLogin)
		return
	}

	user, ok := newUser(request.Username, request.Role)
	if !ok {
		writeError(w, http.StatusUnauthorized, messageInvalidLogin)
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		log.Error(err, "issuing session", "username", user.Username)
		writeError(w, http.StatusInternalServerError, messageInternalError)

		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))

	h.writeJSON(w, http.StatusOK, &loginResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

func (h *Handler) PostLogout(w http.ResponseWriter, r *http.Request) {
	if claims, err := h.sessions.FromRequest(r); err == nil {
		log.FromContext(r.Context()).V(1).Info("session ended", "username", claims.Username, "role", claims.Role)
	}

	http.SetCookie(w, h.sessions.ExpiredCookie())

	h.writeJSON(w, http.StatusOK, &envelope{Success: true, Message: "Logout successful"})
}

func (h *Handler) ListSPBE(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, "", h.store.ListSPBE())
}

func (h *Handler) GetSPBE(w http.ResponseWriter, r *http.Request) {
	spbe, err := h.store.GetSPBE(chi.URLParam(r, "id"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	h.writeData(w, "", spbe)
}

type updateStockRequest struct {
	SPBEID   string   `json:"spbeId"`
	NewStock *float64 `json:"newStock"`
}

func (h *Handler) PostUpdateStock(w http.ResponseWriter, r *http.Request) {
	var request updateStockRequest

	if err := readJSON(r, &request); err != nil || request.NewStock == nil {
		writeError(w, http.StatusBadRequest, messageInvalidBody)
		return
	}

	spbe, err := h.store.UpdateStock(request.SPBEID, *request.NewStock)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	h.writeData(w, "Stock updated successfully", spbe)
}

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, "", h.store.ListVehicles())
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.store.GetVehicle(chi.URLParam(r, "id"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	h.writeData(w, "", vehicle)
}

type updatePositionRequest struct {
	VehicleID string    `json:"vehicleId"`
	Position  *Position `json:"position"`
	Status    string    `json:"status"`
}

func (h *Handler) PostUpdatePosition(w http.ResponseWriter, r *http.Request) {
	var request updatePositionRequest

	if err := readJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, messageInvalidBody)
		return
	}

	vehicle, err := h.store.UpdateVehicle(request.VehicleID, request.Position, request.Status)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	h.writeData(w, "Vehicle updated successfully", vehicle)
}

func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, "", h.store.ListDeliveries())
}

func (h *Handler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	delivery, err := h.store.GetDelivery(chi.URLParam(r, "id"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	h.writeData(w, "", delivery)
}

type updateProgressRequest struct {
	DeliveryID string   `json:"deliveryId"`
	Progress   *float64 `json:"progress"`
	Status     string   `json:"status"`
	ETA        string   `json:"eta"`
}

func (h *Handler) PostUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var request updateProgressRequest

	if err := readJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, messageInvalidBody)
		return
	}

	delivery, err := h.store.UpdateDelivery(request.DeliveryID, request.Progress, request.Status, request.ETA)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	h.writeData(w, "Delivery updated successfully", delivery)
}

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, "", h.store.ListAlerts())
}

type resolveAlertRequest struct {
	AlertID string `json:"alertId"`
}

func (h *Handler) PostResolveAlert(w http.ResponseWriter, r *http.Request) {
	var request resolveAlertRequest

	if err := readJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, messageInvalidBody)
		return
	}

	alert, err := h.store.ResolveAlert(request.AlertID)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	h.writeData(w, "Alert resolved successfully", alert)
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, "", h.store.Metrics())
}

func (h *Handler) GetSupplyChainMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, "", h.store.Metrics().SupplyChain)
}

func (h *Handler) GetOperationalMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, "", h.store.Metrics().Operational)
}

type optimizeRouteRequest struct {
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	Waypoints         []string `json:"waypoints"`
	OptimizeWaypoints bool     `json:"optimizeWaypoints"`
}

func (h *Handler) PostOptimizeRoute(w http.ResponseWriter, r *http.Request) {
	var request optimizeRouteRequest

	if err := readJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, messageInvalidBody)
		return
	}

	if request.Origin == "" || request.Destination == "" {
		writeError(w, http.StatusBadRequest, "Origin and destination are required")
		return
	}

	waypoints := request.Waypoints
	if waypoints == nil {
		waypoints = []string{}
	}

	h.writeData(w, "Route optimized successfully", &OptimizedRoute{
		ID:          "route_" + uuid.NewString(),
		Name:        request.Origin + " to " + request.Destination,
		Origin:      request.Origin,
		Destination: request.Destination,
		Waypoints:   waypoints,
		Distance:    "125 km",
		Duration:    "2 hours 15 minutes",
		FuelCost:    "Rp 150,000",
		Optimized:   request.OptimizeWaypoints,
		Status:      "calculated",
		Path: []Position{
			{Lat: -6.2088, Lng: 106.8456},
			{Lat: -6.2200, Lng: 106.8300},
			{Lat: -6.2615, Lng: 106.7815},
		},
	})
}
