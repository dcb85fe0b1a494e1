// Package lab provides the HTTP handlers and business logic for listing
// calculators, evaluating them and querying the recorded history.
//
// Formula values stay float64 end to end; NaN and ±Inf are recorded and
// returned as-is (JSON strings "NaN", "+Inf", "-Inf").
package lab

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/calclab/calc-engine/internal/calculator"
	"github.com/calclab/calc-engine/internal/display"
	"github.com/calclab/calc-engine/internal/metrics"
	"github.com/calclab/calc-engine/internal/model"
	"github.com/calclab/calc-engine/internal/store"
	"github.com/calclab/calc-engine/internal/throttle"
)

// MaxListLimit caps the limit query parameter of ListCalculations.
const MaxListLimit = 1000

// Service handles calculator operations.
type Service struct {
	store store.Store
	wsHub *WSHub // optional WebSocket hub for live broadcasts
	now   func() time.Time
}

// NewService creates a new lab service.
// Pass nil for hub if WebSocket broadcasting is not needed.
func NewService(st store.Store, hub *WSHub) *Service {
	return &Service{
		store: st,
		wsHub: hub,
		now:   time.Now,
	}
}

// --- Request/Response types ---

// EvaluateRequest is the JSON body for POST /calculators/{kind}/evaluate.
// Omitted inputs take the calculator defaults; an empty body is allowed.
type EvaluateRequest struct {
	Inputs map[string]float64 `json:"inputs"`
}

// EvaluateResponse is the recorded calculation plus the card's second line.
type EvaluateResponse struct {
	Calculation *model.Calculation `json:"calculation"`
	Detail      string             `json:"detail,omitempty"`
}

// StatsResponse is the body of GET /calculations/stats.
type StatsResponse struct {
	Total  int64             `json:"total"`
	ByKind []model.KindCount `json:"by_kind"`
}

// --- Core ---

// Evaluate binds values over the defaults for kind, runs the formula and
// records the result as an immutable calculation.
func (s *Service) Evaluate(ctx context.Context, kind calculator.Kind, values map[string]float64, clientID string) (*model.Calculation, string, error) {
	start := time.Now()

	in, err := calculator.Bind(kind, values)
	if err != nil {
		return nil, "", err
	}
	res := calculator.Evaluate(in)

	calc := &model.Calculation{
		ID:        uuid.New().String(),
		Kind:      string(kind),
		ClientID:  clientID,
		Inputs:    in.Values,
		Value:     model.Float(res.Value),
		Verdict:   string(res.Verdict),
		Finite:    res.Finite,
		Display:   display.Headline(kind, res),
		CreatedAt: s.now().UTC(),
	}
	if res.Percent != nil {
		p := model.Float(*res.Percent)
		calc.Percent = &p
	}

	if err := s.store.SaveCalculation(ctx, calc); err != nil {
		return nil, "", err
	}

	metrics.CalculationsTotal.WithLabelValues(calc.Kind).Inc()
	if !calc.Finite {
		metrics.NonFiniteResults.WithLabelValues(calc.Kind).Inc()
	}
	metrics.CalculationLatency.WithLabelValues(calc.Kind).Observe(time.Since(start).Seconds())

	return calc, display.Detail(kind, in.Values, res), nil
}

// --- HTTP Handlers ---

// ListCalculators handles GET /api/v1/calculators
func (s *Service) ListCalculators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, calculator.All())
}

// GetCalculator handles GET /api/v1/calculators/{kind}
func (s *Service) GetCalculator(w http.ResponseWriter, r *http.Request) {
	kind, err := calculator.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	d, _ := calculator.Lookup(kind)
	writeJSON(w, http.StatusOK, d)
}

// EvaluateCalculator handles POST /api/v1/calculators/{kind}/evaluate
func (s *Service) EvaluateCalculator(w http.ResponseWriter, r *http.Request) {
	kind, err := calculator.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	clientID := throttle.ClientKey(r)
	calc, detail, err := s.Evaluate(r.Context(), kind, req.Inputs, clientID)
	if err != nil {
		if errors.Is(err, calculator.ErrUnknownParam) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("failed to record calculation", "kind", kind, "err", err)
		writeError(w, "failed to record calculation", http.StatusInternalServerError)
		return
	}

	slog.Info("calculation evaluated",
		"id", calc.ID,
		"kind", calc.Kind,
		"client", clientID,
		"value", calc.Value.String(),
		"verdict", calc.Verdict,
		"finite", calc.Finite,
	)

	if s.wsHub != nil {
		s.wsHub.Broadcast(WSMessage{
			Type:          "calculation_evaluated",
			CalculationID: calc.ID,
			Kind:          calc.Kind,
			Value:         calc.Value,
			Verdict:       calc.Verdict,
			Display:       calc.Display,
		})
	}

	writeJSON(w, http.StatusCreated, EvaluateResponse{Calculation: calc, Detail: detail})
}

// GetCalculation handles GET /api/v1/calculations/{id}
func (s *Service) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	calc, err := s.store.GetCalculation(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "calculation not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load calculation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

// ListCalculations handles GET /api/v1/calculations
// Optional filters: ?kind=<kind|chip>&client=<id>&limit=<n>.
func (s *Service) ListCalculations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f model.CalculationFilter

	if k := q.Get("kind"); k != "" {
		kind, err := calculator.ParseKind(k)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.Kind = string(kind)
	}
	f.ClientID = q.Get("client")
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > MaxListLimit {
			writeError(w, "limit must be between 1 and 1000", http.StatusBadRequest)
			return
		}
		f.Limit = n
	}

	calcs, err := s.store.ListCalculations(r.Context(), f)
	if err != nil {
		writeError(w, "failed to list calculations", http.StatusInternalServerError)
		return
	}
	if calcs == nil {
		calcs = []model.Calculation{}
	}
	writeJSON(w, http.StatusOK, calcs)
}

// GetStats handles GET /api/v1/calculations/stats
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.CountByKind(r.Context())
	if err != nil {
		writeError(w, "failed to load stats", http.StatusInternalServerError)
		return
	}

	resp := StatsResponse{ByKind: counts}
	if resp.ByKind == nil {
		resp.ByKind = []model.KindCount{}
	}
	for _, kc := range counts {
		resp.Total += kc.Count
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
