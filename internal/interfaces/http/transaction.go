package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"finman/internal/domain"
	"finman/internal/domain/transaction"
)

// TransactionService is the part of transaction.Service the routes need.
type TransactionService interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	Get(ctx context.Context, userID, id string) (*transaction.Transaction, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*transaction.Transaction, error)
	Filter(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error)
	Update(ctx context.Context, userID, id string, params transaction.UpdateParams) (*transaction.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}

type TransactionHandler struct {
	transactions TransactionService
}

func NewTransactionHandler(transactions TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type CreateTransactionRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Date        string  `json:"date,omitempty"`
}

type UpdateTransactionRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
}

// HandleTransactions lists (GET) or creates (POST) the user's transactions.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListTransactions(w, r)
	case http.MethodPost:
		h.handleCreateTransaction(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// HandleTransactionByID routes requests for a single transaction.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetTransaction(w, r)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdateTransaction(w, r)
	case http.MethodDelete:
		h.handleDeleteTransaction(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (h *TransactionHandler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to add transaction")
		return
	}

	typ, err := transaction.ParseType(req.Type)
	if err != nil {
		writeError(w, r, err, "failed to add transaction")
		return
	}

	tx, err := h.transactions.Create(r.Context(), transaction.CreateParams{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        typ,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		writeError(w, r, err, "failed to add transaction")
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, err := intParam(q, "limit")
	if err != nil {
		writeError(w, r, err, "failed to list transactions")
		return
	}
	offset, err := intParam(q, "offset")
	if err != nil {
		writeError(w, r, err, "failed to list transactions")
		return
	}

	txs, err := h.transactions.List(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, r, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

// HandleFilter runs a conjunctive query built from the query string. Absent
// parameters are not applied.
func (h *TransactionHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err, "failed to filter transactions")
		return
	}
	filter.UserID = userID

	txs, err := h.transactions.Filter(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "failed to filter transactions")
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

func parseFilter(q url.Values) (transaction.Filter, error) {
	f := transaction.Filter{
		Category:  q.Get("category"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	if raw := q.Get("type"); raw != "" {
		t, err := transaction.ParseType(raw)
		if err != nil {
			return f, err
		}
		f.Type = t
	}

	var err error
	if f.MinAmount, err = floatParam(q, "min_amount"); err != nil {
		return f, err
	}
	if f.MaxAmount, err = floatParam(q, "max_amount"); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(q, "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = intParam(q, "offset"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *TransactionHandler) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tx, err := h.transactions.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to update transaction")
		return
	}

	params := transaction.UpdateParams{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
	if req.Type != nil {
		t, err := transaction.ParseType(*req.Type)
		if err != nil {
			writeError(w, r, err, "failed to update transaction")
			return
		}
		params.Type = &t
	}

	tx, err := h.transactions.Update(r.Context(), userID, r.PathValue("id"), params)
	if err != nil {
		writeError(w, r, err, "failed to update transaction")
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.transactions.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err, "failed to delete transaction")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validation("%s must be an integer", key)
	}
	return n, nil
}

func floatParam(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.Validation("%s must be a number", key)
	}
	return &v, nil
}
