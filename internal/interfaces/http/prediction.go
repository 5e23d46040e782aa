package http

import (
	"context"
	"net/http"

	"finman/internal/domain/prediction"
)

// PredictionService is the part of prediction.Service the AI routes need.
type PredictionService interface {
	SpendingAnalysis(ctx context.Context, userID string) (*prediction.Analysis, error)
	BudgetPrediction(ctx context.Context, userID string) (*prediction.Forecast, error)
	SavingsSuggestions(ctx context.Context, userID string) (*prediction.Suggestions, error)
}

type PredictionHandler struct {
	predictions PredictionService
}

func NewPredictionHandler(predictions PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

func (h *PredictionHandler) HandleSpendingAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.prepare(w, r)
	if !ok {
		return
	}

	analysis, err := h.predictions.SpendingAnalysis(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to analyze spending")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// HandleBudgetPrediction extrapolates next month's expenses. Fewer than two
// months of history is a 400.
func (h *PredictionHandler) HandleBudgetPrediction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.prepare(w, r)
	if !ok {
		return
	}

	forecast, err := h.predictions.BudgetPrediction(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to predict budget")
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (h *PredictionHandler) HandleSavingsSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.prepare(w, r)
	if !ok {
		return
	}

	suggestions, err := h.predictions.SavingsSuggestions(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to build savings suggestions")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *PredictionHandler) prepare(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return "", false
	}
	return requireUserID(w, r)
}
