package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/recommend"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Match list sizes used by the recommendation endpoints
const (
	aiMatchLimit      = 20
	maxCompareVehicle = 5
)

// profileRequest is the shopper profile shared by the match and AI endpoints
type profileRequest struct {
	AnnualIncome      decimal.Decimal `json:"annualIncome"`
	CreditScore       int             `json:"creditScore"`
	EmploymentSubsidy decimal.Decimal `json:"employmentSubsidy"`
	BudgetMin         decimal.Decimal `json:"budgetMin"`
	BudgetMax         decimal.Decimal `json:"budgetMax"`
	LeaseTerm         int             `json:"leaseTerm"`
}

func (p profileRequest) profile() domain.FinancialProfile {
	return domain.FinancialProfile{
		AnnualIncome:      p.AnnualIncome,
		MonthlyIncome:     p.AnnualIncome.Div(decimal.NewFromInt(12)),
		CreditScore:       p.CreditScore,
		EmploymentSubsidy: p.EmploymentSubsidy,
		BudgetMin:         p.BudgetMin,
		BudgetMax:         p.BudgetMax,
		LeaseTerm:         p.LeaseTerm,
	}
}

type matchRequest struct {
	profileRequest
	Limit *int `json:"limit,omitempty"`
}

type forecastRequest struct {
	VehiclePrice decimal.Decimal            `json:"vehiclePrice"`
	Factors      domain.DepreciationFactors `json:"factors"`
}

type resaleRequest struct {
	VehiclePrice decimal.Decimal            `json:"vehiclePrice"`
	Years        decimal.Decimal            `json:"years"`
	Factors      domain.DepreciationFactors `json:"factors"`
}

type recommendationRequest struct {
	profileRequest
	VehicleID string `json:"vehicleId"`
}

type compareRequest struct {
	profileRequest
	VehicleIDs []string `json:"vehicleIds"`
}

type compareResponse struct {
	Comparison string                `json:"comparison"`
	Vehicles   []domain.VehicleMatch `json:"vehicles"`
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAffordability"
	var req calculation.AffordabilityInput
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, err := h.engine.CalculateAffordability(req)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMatch"
	var req matchRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	limit := calculation.DefaultMatchLimit
	if req.Limit != nil {
		if *req.Limit <= 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, "limit must be positive", op)
			return
		}
		limit = *req.Limit
	}

	start := time.Now()
	matches, err := h.engine.Match(req.profile(), limit)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	h.logger.Info("vehicles matched",
		zap.String("op", op),
		zap.Int("matches", len(matches)),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, matches)
}

func (h *handler) handleVehicles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category := query.Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}

	vehicles := h.catalog.ByCategory(category)
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		matched := make(map[string]bool)
		for _, v := range h.catalog.Search(q) {
			matched[v.ID] = true
		}
		filtered := vehicles[:0]
		for _, v := range vehicles {
			if matched[v.ID] {
				filtered = append(filtered, v)
			}
		}
		vehicles = filtered
	}
	h.writeJSON(w, http.StatusOK, vehicles)
}

func (h *handler) handleVehicle(w http.ResponseWriter, r *http.Request) {
	v, ok := h.catalog.ByID(r.PathValue("id"))
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, "Vehicle not found", "server.handleVehicle")
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// handleProjection finances the vehicle at the apr query parameter, or the
// creditScore tier rate, or the default projection rate.
func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	v, ok := h.catalog.ByID(r.PathValue("id"))
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, "Vehicle not found", op)
		return
	}

	query := r.URL.Query()
	apr := calculation.DefaultProjectionAPR
	if raw := query.Get("apr"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid apr %q", raw), op)
			return
		}
		apr = parsed
	} else if raw := query.Get("creditScore"); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid creditScore %q", raw), op)
			return
		}
		if err := domain.ValidateCreditScore(score); err != nil {
			h.respondEngineError(w, err, op)
			return
		}
		apr = calculation.ResolveAPR(score)
	}

	mileage := 0
	if raw := query.Get("annualMileage"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid annualMileage %q", raw), op)
			return
		}
		mileage = m
	}

	projection, err := h.engine.Projection(v, apr, mileage)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, projection)
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"
	var req forecastRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	forecast, err := h.engine.DepreciationForecast(req.VehiclePrice, req.Factors)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, forecast)
}

func (h *handler) handleResale(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleResale"
	var req resaleRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	resale, err := h.engine.Resale(req.VehiclePrice, req.Years, req.Factors)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, resale)
}

func (h *handler) handleTCO(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTCO"
	var req calculation.TCOInput
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	tco, err := h.engine.TCOFromVehicle(req)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, tco)
}

func (h *handler) handleBuyVsLease(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBuyVsLease"
	var req calculation.BuyVsLeaseInput
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, err := calculation.BuyVsLease(req)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRecommendation"
	var req recommendationRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if strings.TrimSpace(req.VehicleID) == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "vehicleId is required", op)
		return
	}

	profile := req.profile()
	matches, err := h.engine.Match(profile, aiMatchLimit)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}

	var found *domain.VehicleMatch
	for i := range matches {
		if matches[i].Vehicle.ID == req.VehicleID {
			found = &matches[i]
			break
		}
	}
	if found == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "Vehicle not found or not suitable for profile", op)
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), recommend.Request{
		Match:   *found,
		Profile: recommend.SummaryFromProfile(profile),
	})
	if err != nil {
		h.countRecommendation("error")
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Failed to generate recommendation", op)
		return
	}
	h.countRecommendation(rec.Source)
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	var req compareRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if len(req.VehicleIDs) < 2 {
		h.respondEngineError(w, domain.ErrInsufficientVehicle, op)
		return
	}
	if len(req.VehicleIDs) > maxCompareVehicle {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("at most %d vehicles can be compared", maxCompareVehicle), op)
		return
	}

	profile := req.profile()
	all, err := h.engine.Match(profile, aiMatchLimit)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}

	wanted := make(map[string]bool, len(req.VehicleIDs))
	for _, id := range req.VehicleIDs {
		wanted[id] = true
	}
	selected := make([]domain.VehicleMatch, 0, len(req.VehicleIDs))
	for _, m := range all {
		if wanted[m.Vehicle.ID] {
			selected = append(selected, m)
		}
	}
	if len(selected) < 2 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "At least 2 vehicles required for comparison", op)
		return
	}

	cmp, err := h.recommender.Compare(r.Context(), selected, recommend.SummaryFromProfile(profile))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Failed to generate comparison", op)
		return
	}
	h.writeJSON(w, http.StatusOK, compareResponse{Comparison: cmp.Text, Vehicles: selected})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) countRecommendation(outcome string) {
	if h.metrics == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	h.metrics.Recommendations.WithLabelValues(h.providerName, outcome).Inc()
}
