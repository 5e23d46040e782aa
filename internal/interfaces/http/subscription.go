package http

import (
	"context"
	"net/http"

	"finman/internal/domain/subscription"
)

// SubscriptionService is the part of subscription.Service the routes need.
type SubscriptionService interface {
	Create(ctx context.Context, params subscription.CreateParams) (*subscription.Subscription, error)
	List(ctx context.Context, userID string) ([]*subscription.Subscription, error)
	Get(ctx context.Context, userID, id string) (*subscription.Subscription, error)
	Update(ctx context.Context, userID, id string, params subscription.UpdateParams) (*subscription.Subscription, error)
	Delete(ctx context.Context, userID, id string) error
}

type SubscriptionHandler struct {
	subscriptions SubscriptionService
}

func NewSubscriptionHandler(subscriptions SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// CreateSubscriptionRequest accepts due_date as YYYY-MM-DD or "<N> days".
type CreateSubscriptionRequest struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"due_date"`
	Category string  `json:"category,omitempty"`
}

type UpdateSubscriptionRequest struct {
	Name     *string  `json:"name,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
	DueDate  *string  `json:"due_date,omitempty"`
	Category *string  `json:"category,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

func (h *SubscriptionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateSubscriptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to add subscription")
		return
	}

	sub, err := h.subscriptions.Create(r.Context(), subscription.CreateParams{
		UserID:   userID,
		Name:     req.Name,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Category: req.Category,
	})
	if err != nil {
		writeError(w, r, err, "failed to add subscription")
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

func (h *SubscriptionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	subs, err := h.subscriptions.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to fetch subscriptions")
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

// HandleSubscriptionByID routes requests for a single subscription.
func (h *SubscriptionHandler) HandleSubscriptionByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetSubscription(w, r)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdateSubscription(w, r)
	case http.MethodDelete:
		h.handleDeleteSubscription(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (h *SubscriptionHandler) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sub, err := h.subscriptions.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "failed to retrieve subscription")
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateSubscriptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to update subscription")
		return
	}

	params := subscription.UpdateParams{
		Name:     req.Name,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Category: req.Category,
	}
	if req.Status != nil {
		s := subscription.Status(*req.Status)
		params.Status = &s
	}

	sub, err := h.subscriptions.Update(r.Context(), userID, r.PathValue("id"), params)
	if err != nil {
		writeError(w, r, err, "failed to update subscription")
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.subscriptions.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err, "failed to delete subscription")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Subscription deleted successfully"})
}
