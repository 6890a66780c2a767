package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skyroutes/planner/backend/internal/domain"
	"github.com/skyroutes/planner/backend/internal/engine"
	"github.com/skyroutes/planner/backend/internal/factstore"
	"github.com/skyroutes/planner/backend/internal/routing"
)

type stubSource struct {
	conns []domain.Connection
}

func (s *stubSource) LoadInitialConnections(context.Context) []domain.Connection {
	return s.conns
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedEngine(mirror engine.Mirror) *engine.Engine {
	store := routing.NewStore()
	for _, c := range []domain.Connection{
		{Origin: "Toronto", Destination: "NewYork", Carrier: "AirCanada", DurationHours: 1.5, CostAmount: 220},
		{Origin: "NewYork", Destination: "London", Carrier: "Delta", DurationHours: 6.8, CostAmount: 480},
		{Origin: "London", Destination: "Paris", Carrier: "BA", DurationHours: 1.1, CostAmount: 120},
	} {
		store.Upsert(c)
	}
	return engine.New(store, routing.CoordIndex{}, mirror, testLogger())
}

func TestHandleRoute(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/route?from=Toronto&to=London", nil)
	rec := httptest.NewRecorder()

	handlers.handleRoute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload itineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Path) != 3 || payload.Path[0] != "Toronto" || payload.Path[2] != "London" {
		t.Fatalf("unexpected path %v", payload.Path)
	}
	if payload.Totals.DurationHours != 8.3 {
		t.Fatalf("expected duration 8.3, got %v", payload.Totals.DurationHours)
	}
	if payload.Totals.Layovers != 1 {
		t.Fatalf("expected 1 layover, got %d", payload.Totals.Layovers)
	}
	if payload.Totals.Method != "dijkstra" {
		t.Fatalf("expected default method dijkstra, got %q", payload.Totals.Method)
	}
	if len(payload.Edges) != 2 {
		t.Fatalf("expected 2 traversed edges, got %d", len(payload.Edges))
	}
}

func TestHandleRouteMissingParams(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/route?from=Toronto", nil)
	rec := httptest.NewRecorder()

	handlers.handleRoute(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleRouteNoRoute(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/route?from=Paris&to=Toronto", nil)
	rec := httptest.NewRecorder()

	handlers.handleRoute(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRouteRejectsNegativeWeights(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/route?from=Toronto&to=London&w_cost=-1", nil)
	rec := httptest.NewRecorder()

	handlers.handleRoute(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleRouteMaxLayovers(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/route?from=Toronto&to=London&max_layovers=0", nil)
	rec := httptest.NewRecorder()

	handlers.handleRoute(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 when max_layovers excludes every path, got %d", rec.Code)
	}
}

func TestHandleMultiCity(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/multi-city?from=Toronto&to=Paris&via=London", nil)
	rec := httptest.NewRecorder()

	handlers.handleMultiCity(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload itineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := []string{"Toronto", "NewYork", "London", "Paris"}
	if len(payload.Path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, payload.Path)
	}
	for i := range want {
		if payload.Path[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, payload.Path)
		}
	}
	if len(payload.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(payload.Legs))
	}
}

func TestHandleUpdateFlightData(t *testing.T) {
	mirror := factstore.NewMemoryStore()
	eng := seedEngine(mirror)
	handlers := NewAPIHandlers(testLogger(), eng, nil)

	body := `{"start":"Toronto","end":"London","airline":"Direct","duration":7.0,"cost":500,"layovers":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/update-flight-data", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.handleUpdateFlightData(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(mirror.Facts()) != 1 {
		t.Fatalf("expected the fact to reach the mirror")
	}

	// The new direct flight should win subsequent queries.
	routeReq := httptest.NewRequest(http.MethodGet, "/api/route?from=Toronto&to=London", nil)
	routeRec := httptest.NewRecorder()
	handlers.handleRoute(routeRec, routeReq)

	var payload itineraryResponse
	if err := json.Unmarshal(routeRec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Path) != 2 {
		t.Fatalf("expected the direct path, got %v", payload.Path)
	}
}

func TestHandleUpdateFlightDataMirrorFailure(t *testing.T) {
	mirror := factstore.NewMemoryStore().WithMergeError(errors.New("unreachable"))
	handlers := NewAPIHandlers(testLogger(), seedEngine(mirror), nil)

	body := `{"start":"Toronto","end":"London","airline":"Direct","duration":7.0,"cost":500}`
	req := httptest.NewRequest(http.MethodPost, "/api/update-flight-data", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.handleUpdateFlightData(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("mirror failure should not fail the request, got %d", rec.Code)
	}
	var payload statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Warning == "" {
		t.Fatalf("expected a warning about the failed mirror update")
	}
}

func TestHandleUpdateFlightDataValidation(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	cases := []string{
		`{"end":"London","airline":"Direct","duration":7.0,"cost":500}`,
		`{"start":"Toronto","airline":"Direct","duration":7.0,"cost":500}`,
		`{"start":"Toronto","end":"London","duration":7.0,"cost":500}`,
		`{"start":"Toronto","end":"London","airline":"Direct","cost":500}`,
		`{"start":"Toronto","end":"London","airline":"Direct","duration":-1,"cost":500}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/update-flight-data", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handlers.handleUpdateFlightData(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestHandleReload(t *testing.T) {
	eng := seedEngine(nil)
	source := &stubSource{conns: []domain.Connection{
		{Origin: "Paris", Destination: "Rome", Carrier: "AirFrance", DurationHours: 2.0, CostAmount: 160},
	}}
	handlers := NewAPIHandlers(testLogger(), eng, source)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()

	handlers.handleReload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload reloadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Connections != 1 {
		t.Fatalf("expected 1 connection after reload, got %d", payload.Connections)
	}
	if locs := eng.Locations(); len(locs) != 2 {
		t.Fatalf("expected the graph to be replaced, got locations %v", locs)
	}
}

func TestHandleCitiesSorted(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cities", nil)
	rec := httptest.NewRecorder()

	handlers.handleCities(rec, req)

	var payload citiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := []string{"London", "NewYork", "Paris", "Toronto"}
	if len(payload.Cities) != len(want) {
		t.Fatalf("expected cities %v, got %v", want, payload.Cities)
	}
	for i := range want {
		if payload.Cities[i] != want[i] {
			t.Fatalf("expected cities %v, got %v", want, payload.Cities)
		}
	}
}

func TestRouterRejectsUnknownMethod(t *testing.T) {
	handlers := NewAPIHandlers(testLogger(), seedEngine(nil), nil)
	router := NewRouter(testLogger(), RouterDependencies{API: handlers})

	req := httptest.NewRequest(http.MethodPost, "/api/route?from=Toronto&to=London", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestHealthzDegradedOnMirrorFailure(t *testing.T) {
	mirror := factstore.NewMemoryStore().WithConnectivityError(errors.New("bolt down"))
	router := NewRouter(testLogger(), RouterDependencies{
		Health: MirrorHealthService{Client: mirror},
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}
