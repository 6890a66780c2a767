package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/skyroutes/planner/backend/internal/domain"
	"github.com/skyroutes/planner/backend/internal/engine"
	"github.com/skyroutes/planner/backend/internal/routing"
)

// ConnectionSource supplies the dataset used by the reload endpoint,
// normally the boot-time ingestion loader.
type ConnectionSource interface {
	LoadInitialConnections(ctx context.Context) []domain.Connection
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger *slog.Logger
	engine *engine.Engine
	source ConnectionSource
}

// NewAPIHandlers constructs an APIHandlers instance. source may be nil, in
// which case reload resets the graph to an empty dataset plus whatever the
// engine already carries.
func NewAPIHandlers(logger *slog.Logger, eng *engine.Engine, source ConnectionSource) *APIHandlers {
	return &APIHandlers{
		logger: logger,
		engine: eng,
		source: source,
	}
}

func (h *APIHandlers) handleRoutes(w http.ResponseWriter, r *http.Request) {
	conns := h.engine.Connections()
	routes := make([]connectionDTO, 0, len(conns))
	for _, conn := range conns {
		routes = append(routes, connectionToDTO(conn))
	}
	respondJSON(w, http.StatusOK, routesResponse{
		Routes: routes,
		Nodes:  locationStrings(h.engine.Locations()),
	})
}

func (h *APIHandlers) handleCities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, citiesResponse{
		Cities: locationStrings(h.engine.Locations()),
	})
}

func (h *APIHandlers) handleRoute(w http.ResponseWriter, r *http.Request) {
	origin, destination, ok := requireEndpoints(w, r)
	if !ok {
		return
	}
	query, ok := parseQuery(w, r)
	if !ok {
		return
	}

	it, err := h.engine.QueryRoute(origin, destination, query)
	if err != nil {
		h.respondQueryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itineraryToDTO(it, query.Strategy))
}

func (h *APIHandlers) handleRoundTrip(w http.ResponseWriter, r *http.Request) {
	origin, destination, ok := requireEndpoints(w, r)
	if !ok {
		return
	}
	query, ok := parseQuery(w, r)
	if !ok {
		return
	}

	it, err := h.engine.QueryRoundTrip(origin, destination, query)
	if err != nil {
		h.respondQueryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itineraryToDTO(it, query.Strategy))
}

func (h *APIHandlers) handleMultiCity(w http.ResponseWriter, r *http.Request) {
	origin, destination, ok := requireEndpoints(w, r)
	if !ok {
		return
	}
	query, ok := parseQuery(w, r)
	if !ok {
		return
	}

	var stops []domain.LocationID
	if via := r.URL.Query().Get("via"); via != "" {
		for _, stop := range strings.Split(via, ",") {
			stop = strings.TrimSpace(stop)
			if stop == "" {
				continue
			}
			stops = append(stops, domain.LocationID(stop))
		}
	}

	it, err := h.engine.QueryMultiCity(origin, stops, destination, query)
	if err != nil {
		h.respondQueryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itineraryToDTO(it, query.Strategy))
}

func (h *APIHandlers) handleUpdateFlightData(w http.ResponseWriter, r *http.Request) {
	var payload updateFlightRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Start == "" || payload.End == "" || payload.Airline == "" {
		writeError(w, http.StatusBadRequest, "start, end and airline are required")
		return
	}
	if payload.Duration == nil || payload.Cost == nil {
		writeError(w, http.StatusBadRequest, "duration and cost are required")
		return
	}

	conn := domain.Connection{
		Origin:        domain.LocationID(strings.TrimSpace(payload.Start)),
		Destination:   domain.LocationID(strings.TrimSpace(payload.End)),
		Carrier:       strings.TrimSpace(payload.Airline),
		DurationHours: *payload.Duration,
		CostAmount:    *payload.Cost,
		Layovers:      payload.Layovers,
	}

	err := h.engine.AddConnection(r.Context(), conn)
	var mirrorErr *engine.MirrorError
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
	case errors.As(err, &mirrorErr):
		// Local write succeeded; report the inconsistency without failing
		// the request.
		h.logger.Warn("fact stored without mirror", "error", err)
		respondJSON(w, http.StatusOK, statusResponse{Status: "ok", Warning: mirrorErr.Error()})
	case errors.Is(err, engine.ErrInvalidConnection):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("failed to add connection", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add connection")
	}
}

func (h *APIHandlers) handleReload(w http.ResponseWriter, r *http.Request) {
	var conns []domain.Connection
	if h.source != nil {
		conns = h.source.LoadInitialConnections(r.Context())
	}
	h.engine.Reload(conns)
	respondJSON(w, http.StatusOK, reloadResponse{
		Status:      "ok",
		Connections: len(conns),
	})
}

func (h *APIHandlers) respondQueryError(w http.ResponseWriter, err error) {
	var noRoute *domain.NoRouteError
	switch {
	case errors.As(err, &noRoute):
		writeError(w, http.StatusNotFound, noRoute.Error())
	case errors.Is(err, routing.ErrNegativeWeight):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("routing query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal routing error")
	}
}

// --- Request parsing ---

func requireEndpoints(w http.ResponseWriter, r *http.Request) (domain.LocationID, domain.LocationID, bool) {
	q := r.URL.Query()
	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing required params: from, to")
		return "", "", false
	}
	return domain.LocationID(from), domain.LocationID(to), true
}

func parseQuery(w http.ResponseWriter, r *http.Request) (engine.Query, bool) {
	q := r.URL.Query()
	query := engine.Query{
		Strategy: domain.ParseStrategy(q.Get("method")),
		Weights:  domain.DefaultWeights(),
	}

	for _, wc := range []struct {
		param  string
		target *float64
	}{
		{"w_duration", &query.Weights.Duration},
		{"w_cost", &query.Weights.Cost},
		{"w_layovers", &query.Weights.Layovers},
	} {
		v := q.Get(wc.param)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "weights must be numeric")
			return engine.Query{}, false
		}
		*wc.target = parsed
	}

	if v := q.Get("max_layovers"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "max_layovers must be a non-negative integer")
			return engine.Query{}, false
		}
		query.MaxLayovers = &parsed
	}
	return query, true
}

// --- Request & Response DTOs ---

type updateFlightRequest struct {
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Airline  string   `json:"airline"`
	Duration *float64 `json:"duration"`
	Cost     *float64 `json:"cost"`
	Layovers int      `json:"layovers"`
}

type connectionDTO struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Airline  string  `json:"airline"`
	Duration float64 `json:"duration"`
	Cost     float64 `json:"cost"`
	Layovers int     `json:"layovers"`
}

type routesResponse struct {
	Routes []connectionDTO `json:"routes"`
	Nodes  []string        `json:"nodes"`
}

type citiesResponse struct {
	Cities []string `json:"cities"`
}

type totalsDTO struct {
	DurationHours float64 `json:"duration_hours"`
	CostUSD       float64 `json:"cost_usd"`
	Layovers      int     `json:"layovers"`
	Score         float64 `json:"score"`
	Method        string  `json:"method,omitempty"`
}

type legDTO struct {
	Path   []string        `json:"path"`
	Edges  []connectionDTO `json:"edges"`
	Totals totalsDTO       `json:"totals"`
}

type itineraryResponse struct {
	Path   []string        `json:"path"`
	Edges  []connectionDTO `json:"edges"`
	Legs   []legDTO        `json:"legs,omitempty"`
	Totals totalsDTO       `json:"totals"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

type reloadResponse struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
}

func connectionToDTO(conn domain.Connection) connectionDTO {
	return connectionDTO{
		From:     string(conn.Origin),
		To:       string(conn.Destination),
		Airline:  conn.Carrier,
		Duration: conn.DurationHours,
		Cost:     conn.CostAmount,
		Layovers: conn.Layovers,
	}
}

func itineraryToDTO(it domain.Itinerary, strategy domain.Strategy) itineraryResponse {
	resp := itineraryResponse{
		Path: locationStrings(it.Path),
		Totals: totalsDTO{
			DurationHours: it.Totals.DurationHours,
			CostUSD:       it.Totals.CostAmount,
			Layovers:      it.Totals.Layovers,
			Score:         it.Totals.Score,
			Method:        string(strategy),
		},
	}
	for _, leg := range it.Legs {
		legResp := legDTO{
			Path: locationStrings(leg.Path),
			Totals: totalsDTO{
				DurationHours: leg.Totals.DurationHours,
				CostUSD:       leg.Totals.CostAmount,
				Layovers:      leg.Totals.Layovers,
				Score:         leg.Totals.Score,
			},
		}
		for _, edge := range leg.Edges {
			dto := connectionToDTO(edge)
			legResp.Edges = append(legResp.Edges, dto)
			resp.Edges = append(resp.Edges, dto)
		}
		if len(it.Legs) > 1 {
			resp.Legs = append(resp.Legs, legResp)
		}
	}
	return resp
}

func locationStrings(ids []domain.LocationID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// --- Helpers ---

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
