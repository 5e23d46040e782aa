package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"finman/internal/domain/budget"
	"finman/internal/domain/prediction"
	"finman/internal/domain/report"
	"finman/internal/domain/subscription"
	"finman/internal/domain/transaction"
	"finman/internal/domain/user"
	"finman/internal/shared/middleware"
)

const testUserID = "user-1"

// newRequest builds a request authenticated as testUserID. A string body is
// sent verbatim; anything else is JSON-encoded.
func newRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, target, r)
	ctx := middleware.WithUser(req.Context(), &user.User{ID: testUserID, Email: "alice@example.com"})
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// MockUserService implements UserService for testing
type MockUserService struct {
	RegisterFunc   func(ctx context.Context, params user.RegisterParams) (*user.User, error)
	LoginFunc      func(ctx context.Context, email, password string) (*user.Session, error)
	GetProfileFunc func(ctx context.Context, userID string) (*user.User, error)
}

func (m *MockUserService) Register(ctx context.Context, params user.RegisterParams) (*user.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*user.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, nil
}

// MockTransactionService implements TransactionService for testing
type MockTransactionService struct {
	CreateFunc func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	GetFunc    func(ctx context.Context, userID, id string) (*transaction.Transaction, error)
	ListFunc   func(ctx context.Context, userID string, limit, offset int) ([]*transaction.Transaction, error)
	FilterFunc func(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error)
	UpdateFunc func(ctx context.Context, userID, id string, params transaction.UpdateParams) (*transaction.Transaction, error)
	DeleteFunc func(ctx context.Context, userID, id string) error
}

func (m *MockTransactionService) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionService) Get(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockTransactionService) List(ctx context.Context, userID string, limit, offset int) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *MockTransactionService) Filter(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	if m.FilterFunc != nil {
		return m.FilterFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockTransactionService) Update(ctx context.Context, userID, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockTransactionService) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// MockBudgetService implements BudgetService for testing
type MockBudgetService struct {
	SetFunc    func(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error)
	GetFunc    func(ctx context.Context, userID, month string) (*budget.Budget, error)
	UpdateFunc func(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error)
	DeleteFunc func(ctx context.Context, userID, month string) (string, error)
	TrackFunc  func(ctx context.Context, userID, month string) (*budget.Progress, error)
}

func (m *MockBudgetService) Set(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error) {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, userID, month, amount)
	}
	return nil, nil
}

func (m *MockBudgetService) Get(ctx context.Context, userID, month string) (*budget.Budget, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, month)
	}
	return nil, nil
}

func (m *MockBudgetService) Update(ctx context.Context, userID, month string, amount float64) (*budget.Budget, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, month, amount)
	}
	return nil, nil
}

func (m *MockBudgetService) Delete(ctx context.Context, userID, month string) (string, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, month)
	}
	return month, nil
}

func (m *MockBudgetService) Track(ctx context.Context, userID, month string) (*budget.Progress, error) {
	if m.TrackFunc != nil {
		return m.TrackFunc(ctx, userID, month)
	}
	return nil, nil
}

// MockSubscriptionService implements SubscriptionService for testing
type MockSubscriptionService struct {
	CreateFunc func(ctx context.Context, params subscription.CreateParams) (*subscription.Subscription, error)
	ListFunc   func(ctx context.Context, userID string) ([]*subscription.Subscription, error)
	GetFunc    func(ctx context.Context, userID, id string) (*subscription.Subscription, error)
	UpdateFunc func(ctx context.Context, userID, id string, params subscription.UpdateParams) (*subscription.Subscription, error)
	DeleteFunc func(ctx context.Context, userID, id string) error
}

func (m *MockSubscriptionService) Create(ctx context.Context, params subscription.CreateParams) (*subscription.Subscription, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockSubscriptionService) List(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockSubscriptionService) Get(ctx context.Context, userID, id string) (*subscription.Subscription, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockSubscriptionService) Update(ctx context.Context, userID, id string, params subscription.UpdateParams) (*subscription.Subscription, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockSubscriptionService) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// MockReportService implements ReportService for testing
type MockReportService struct {
	SummaryFunc      func(ctx context.Context, userID, start, end string) (*report.Summary, error)
	CategoryWiseFunc func(ctx context.Context, userID, month string) (*report.CategoryBreakdown, error)
	MonthlyFunc      func(ctx context.Context, userID, month string) (*report.PeriodReport, error)
	YearlyFunc       func(ctx context.Context, userID, year string) (*report.PeriodReport, error)
}

func (m *MockReportService) Summary(ctx context.Context, userID, start, end string) (*report.Summary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, userID, start, end)
	}
	return &report.Summary{}, nil
}

func (m *MockReportService) CategoryWise(ctx context.Context, userID, month string) (*report.CategoryBreakdown, error) {
	if m.CategoryWiseFunc != nil {
		return m.CategoryWiseFunc(ctx, userID, month)
	}
	return &report.CategoryBreakdown{}, nil
}

func (m *MockReportService) Monthly(ctx context.Context, userID, month string) (*report.PeriodReport, error) {
	if m.MonthlyFunc != nil {
		return m.MonthlyFunc(ctx, userID, month)
	}
	return &report.PeriodReport{}, nil
}

func (m *MockReportService) Yearly(ctx context.Context, userID, year string) (*report.PeriodReport, error) {
	if m.YearlyFunc != nil {
		return m.YearlyFunc(ctx, userID, year)
	}
	return &report.PeriodReport{}, nil
}

// MockPredictionService implements PredictionService for testing
type MockPredictionService struct {
	SpendingAnalysisFunc   func(ctx context.Context, userID string) (*prediction.Analysis, error)
	BudgetPredictionFunc   func(ctx context.Context, userID string) (*prediction.Forecast, error)
	SavingsSuggestionsFunc func(ctx context.Context, userID string) (*prediction.Suggestions, error)
}

func (m *MockPredictionService) SpendingAnalysis(ctx context.Context, userID string) (*prediction.Analysis, error) {
	if m.SpendingAnalysisFunc != nil {
		return m.SpendingAnalysisFunc(ctx, userID)
	}
	return &prediction.Analysis{}, nil
}

func (m *MockPredictionService) BudgetPrediction(ctx context.Context, userID string) (*prediction.Forecast, error) {
	if m.BudgetPredictionFunc != nil {
		return m.BudgetPredictionFunc(ctx, userID)
	}
	return &prediction.Forecast{}, nil
}

func (m *MockPredictionService) SavingsSuggestions(ctx context.Context, userID string) (*prediction.Suggestions, error) {
	if m.SavingsSuggestionsFunc != nil {
		return m.SavingsSuggestionsFunc(ctx, userID)
	}
	return &prediction.Suggestions{}, nil
}
