package http

import (
	"context"
	"net/http"

	"finman/internal/domain/budget"
)

// BudgetService is the part of budget.Service the routes need.
type BudgetService interface {
	Set(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error)
	Get(ctx context.Context, userID, month string) (*budget.Budget, error)
	Update(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error)
	Delete(ctx context.Context, userID, month string) (string, error)
	Track(ctx context.Context, userID, month string) (*budget.Progress, error)
}

type BudgetHandler struct {
	budgets BudgetService
}

func NewBudgetHandler(budgets BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

// BudgetRequest carries an amount and an optional YYYY-MM month that
// defaults to the current month.
type BudgetRequest struct {
	Amount float64 `json:"amount"`
	Month  string  `json:"month,omitempty"`
}

type BudgetResponse struct {
	Message string  `json:"message,omitempty"`
	Month   string  `json:"month"`
	Amount  float64 `json:"amount"`
}

func (h *BudgetHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req BudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to set budget")
		return
	}

	b, err := h.budgets.Set(r.Context(), userID, req.Month, req.Amount)
	if err != nil {
		writeError(w, r, err, "failed to set budget")
		return
	}

	writeJSON(w, http.StatusCreated, BudgetResponse{
		Message: "Budget set successfully",
		Month:   b.Month,
		Amount:  b.Amount,
	})
}

func (h *BudgetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	b, err := h.budgets.Get(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, err, "failed to retrieve budget")
		return
	}

	writeJSON(w, http.StatusOK, BudgetResponse{Month: b.Month, Amount: b.Amount})
}

func (h *BudgetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req BudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to update budget")
		return
	}

	b, err := h.budgets.Update(r.Context(), userID, req.Month, req.Amount)
	if err != nil {
		writeError(w, r, err, "failed to update budget")
		return
	}

	writeJSON(w, http.StatusOK, BudgetResponse{
		Message: "Budget updated successfully",
		Month:   b.Month,
		Amount:  b.Amount,
	})
}

func (h *BudgetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	month, err := h.budgets.Delete(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, err, "failed to delete budget")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Budget deleted successfully",
		"month":   month,
	})
}

// HandleTrackProgress reports spending against the month's budget.
func (h *BudgetHandler) HandleTrackProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	p, err := h.budgets.Track(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, err, "failed to track budget progress")
		return
	}

	writeJSON(w, http.StatusOK, p)
}
