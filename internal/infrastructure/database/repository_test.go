package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"finman/internal/domain"
	"finman/internal/domain/budget"
	"finman/internal/domain/subscription"
	"finman/internal/domain/transaction"
	"finman/internal/domain/user"
)

// RepositorySuite runs every repository against a fresh in-memory SQLite
// database per test.
type RepositorySuite struct {
	suite.Suite
	db            *DB
	ctx           context.Context
	users         *UserRepository
	transactions  *TransactionRepository
	budgets       *BudgetRepository
	subscriptions *SubscriptionRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	db, err := New(DriverSQLite, ":memory:")
	require.NoError(s.T(), err, "could not open sqlite database")

	s.db = db
	s.ctx = context.Background()
	s.users = NewUserRepository(db)
	s.transactions = NewTransactionRepository(db)
	s.budgets = NewBudgetRepository(db)
	s.subscriptions = NewSubscriptionRepository(db)
}

func (s *RepositorySuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *RepositorySuite) createUser(email string) *user.User {
	u, err := s.users.Create(s.ctx, user.CreateUserParams{Username: "user", Email: email, PasswordHash: "hash"})
	require.NoError(s.T(), err)
	return u
}

func (s *RepositorySuite) addTransaction(userID string, amount float64, typ transaction.Type, category, date string) *transaction.Transaction {
	tx, err := s.transactions.Create(s.ctx, transaction.CreateParams{
		UserID:   userID,
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     date,
	})
	require.NoError(s.T(), err)
	return tx
}

func (s *RepositorySuite) TestMigrationsAreIdempotent() {
	require.NoError(s.T(), s.db.migrate(s.ctx))
}

func (s *RepositorySuite) TestUser_CreateAndGet() {
	u := s.createUser("alice@example.com")
	assert.NotEmpty(s.T(), u.ID)

	byEmail, err := s.users.GetByEmail(s.ctx, "alice@example.com")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), byEmail)
	assert.Equal(s.T(), u.ID, byEmail.ID)
	assert.Equal(s.T(), "hash", byEmail.PasswordHash)
	assert.WithinDuration(s.T(), u.CreatedAt, byEmail.CreatedAt, time.Second)

	byID, err := s.users.GetByID(s.ctx, u.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), byID)
	assert.Equal(s.T(), "alice@example.com", byID.Email)

	missing, err := s.users.GetByEmail(s.ctx, "nobody@example.com")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), missing)
}

func (s *RepositorySuite) TestUser_DuplicateEmailIsConflict() {
	s.createUser("bob@example.com")

	_, err := s.users.Create(s.ctx, user.CreateUserParams{Username: "other", Email: "bob@example.com", PasswordHash: "x"})
	assert.True(s.T(), errors.Is(err, domain.ErrConflict), "got %v", err)
}

func (s *RepositorySuite) TestTransaction_CRUD() {
	u := s.createUser("carol@example.com")
	tx := s.addTransaction(u.ID, 42.5, transaction.TypeExpense, "Groceries", "2024-05-10")

	got, err := s.transactions.GetByID(s.ctx, tx.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), got)
	assert.Equal(s.T(), u.ID, got.UserID)
	assert.Equal(s.T(), 42.5, got.Amount)
	assert.Equal(s.T(), transaction.TypeExpense, got.Type)
	assert.Equal(s.T(), "2024-05-10", got.Date)

	amount := 50.0
	desc := "weekly shop"
	updated, err := s.transactions.Update(s.ctx, tx.ID, transaction.UpdateParams{Amount: &amount, Description: &desc})
	require.NoError(s.T(), err)
	require.NotNil(s.T(), updated)
	assert.Equal(s.T(), 50.0, updated.Amount)
	assert.Equal(s.T(), "weekly shop", updated.Description)
	assert.Equal(s.T(), "Groceries", updated.Category, "untouched field changed")

	missing, err := s.transactions.Update(s.ctx, "no-such-id", transaction.UpdateParams{Amount: &amount})
	require.NoError(s.T(), err)
	assert.Nil(s.T(), missing)

	require.NoError(s.T(), s.transactions.Delete(s.ctx, tx.ID))
	err = s.transactions.Delete(s.ctx, tx.ID)
	assert.True(s.T(), errors.Is(err, domain.ErrNotFound), "got %v", err)

	gone, err := s.transactions.GetByID(s.ctx, tx.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), gone)
}

func (s *RepositorySuite) TestTransaction_ListAndFilter() {
	u := s.createUser("dave@example.com")
	other := s.createUser("erin@example.com")

	s.addTransaction(u.ID, 10, transaction.TypeExpense, "Food & Drink", "2024-05-01")
	s.addTransaction(u.ID, 200, transaction.TypeExpense, "Shopping", "2024-05-15")
	s.addTransaction(u.ID, 3000, transaction.TypeIncome, "Income", "2024-05-31")
	s.addTransaction(u.ID, 75, transaction.TypeExpense, "food & drink", "2024-06-02")
	s.addTransaction(other.ID, 999, transaction.TypeExpense, "Food & Drink", "2024-05-10")

	all, err := s.transactions.List(s.ctx, transaction.Filter{UserID: u.ID, Limit: 100})
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 4)
	assert.Equal(s.T(), "2024-06-02", all[0].Date, "newest first")

	page, err := s.transactions.List(s.ctx, transaction.Filter{UserID: u.ID, Limit: 2, Offset: 1})
	require.NoError(s.T(), err)
	require.Len(s.T(), page, 2)
	assert.Equal(s.T(), "2024-05-31", page[0].Date)

	lo, hi := 50.0, 500.0
	tests := []struct {
		name   string
		filter transaction.Filter
		want   int
	}{
		{"category ignores case", transaction.Filter{Category: "FOOD & DRINK"}, 2},
		{"type", transaction.Filter{Type: transaction.TypeIncome}, 1},
		{"amount range", transaction.Filter{MinAmount: &lo, MaxAmount: &hi}, 2},
		{"date range inclusive", transaction.Filter{StartDate: "2024-05-01", EndDate: "2024-05-31"}, 3},
		{"combined", transaction.Filter{Category: "food & drink", StartDate: "2024-06-01"}, 1},
		{"no match", transaction.Filter{Category: "Travel"}, 0},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			f := tt.filter
			f.UserID = u.ID
			f.Limit = 100
			got, err := s.transactions.List(s.ctx, f)
			require.NoError(s.T(), err)
			assert.Len(s.T(), got, tt.want)
		})
	}
}

func (s *RepositorySuite) TestTransaction_Aggregates() {
	u := s.createUser("frank@example.com")
	other := s.createUser("grace@example.com")

	s.addTransaction(u.ID, 120, transaction.TypeExpense, "Groceries", "2024-05-10")
	s.addTransaction(u.ID, 30, transaction.TypeExpense, "Travel", "2024-05-20")
	s.addTransaction(u.ID, 2000, transaction.TypeIncome, "Income", "2024-05-01")
	s.addTransaction(u.ID, 80, transaction.TypeExpense, "Groceries", "2024-04-28")
	s.addTransaction(other.ID, 500, transaction.TypeExpense, "Groceries", "2024-05-11")

	may, err := transaction.ParseMonth("2024-05")
	require.NoError(s.T(), err)

	byType, err := s.transactions.SumByType(s.ctx, u.ID, may)
	require.NoError(s.T(), err)
	require.Len(s.T(), byType, 2)
	totals := map[transaction.Type]transaction.TypeTotal{}
	for _, t := range byType {
		totals[t.Type] = t
	}
	assert.Equal(s.T(), 150.0, totals[transaction.TypeExpense].Total)
	assert.Equal(s.T(), 2, totals[transaction.TypeExpense].Count)
	assert.Equal(s.T(), 2000.0, totals[transaction.TypeIncome].Total)

	byCategory, err := s.transactions.SumByCategory(s.ctx, u.ID, transaction.TypeExpense, may)
	require.NoError(s.T(), err)
	require.Len(s.T(), byCategory, 2)
	assert.Equal(s.T(), "Groceries", byCategory[0].Category, "largest first")
	assert.Equal(s.T(), 120.0, byCategory[0].Total)

	monthly, err := s.transactions.SumByMonthAndCategory(s.ctx, u.ID, transaction.TypeExpense)
	require.NoError(s.T(), err)
	require.Len(s.T(), monthly, 3)
	assert.Equal(s.T(), "2024-04", monthly[0].Month)
	assert.Equal(s.T(), "2024-05", monthly[1].Month)
	assert.Equal(s.T(), "Groceries", monthly[1].Category)

	empty, err := s.transactions.SumByType(s.ctx, "nobody", may)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), empty)
}

func (s *RepositorySuite) TestBudget_TrackProgressScenario() {
	u := s.createUser("heidi@example.com")
	svc := budget.NewService(s.budgets, s.transactions)

	_, err := svc.Set(s.ctx, u.ID, "2024-05", 500)
	require.NoError(s.T(), err)
	s.addTransaction(u.ID, 120, transaction.TypeExpense, "Groceries", "2024-05-10")
	s.addTransaction(u.ID, 1000, transaction.TypeIncome, "Income", "2024-05-11")

	p, err := svc.Track(s.ctx, u.ID, "2024-05")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 120.0, p.TotalSpent)
	assert.Equal(s.T(), 380.0, p.Remaining)
	assert.Equal(s.T(), 24.0, p.PercentageUsed)
}

func (s *RepositorySuite) TestBudget_CRUD() {
	u := s.createUser("ivan@example.com")

	b, err := s.budgets.Create(s.ctx, u.ID, "2024-05", 500)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), b.ID)

	_, err = s.budgets.Create(s.ctx, u.ID, "2024-05", 600)
	assert.True(s.T(), errors.Is(err, domain.ErrConflict), "got %v", err)

	got, err := s.budgets.GetByMonth(s.ctx, u.ID, "2024-05")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), got)
	assert.Equal(s.T(), 500.0, got.Amount)

	updated, err := s.budgets.UpdateAmount(s.ctx, u.ID, "2024-05", 750)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), updated)
	assert.Equal(s.T(), 750.0, updated.Amount)

	none, err := s.budgets.UpdateAmount(s.ctx, u.ID, "2024-06", 10)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), none)

	require.NoError(s.T(), s.budgets.Delete(s.ctx, u.ID, "2024-05"))
	err = s.budgets.Delete(s.ctx, u.ID, "2024-05")
	assert.True(s.T(), errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func (s *RepositorySuite) TestSubscription_CRUDScopedByOwner() {
	owner := s.createUser("judy@example.com")
	intruder := s.createUser("mallory@example.com")

	sub, err := s.subscriptions.Create(s.ctx, subscription.CreateParams{
		UserID:   owner.ID,
		Name:     "Netflix",
		Amount:   15.99,
		DueDate:  "2024-06-09",
		Category: "Entertainment",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), subscription.StatusActive, sub.Status)

	got, err := s.subscriptions.GetByID(s.ctx, owner.ID, sub.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), got)
	assert.Equal(s.T(), "2024-06-09", got.DueDate)

	hidden, err := s.subscriptions.GetByID(s.ctx, intruder.ID, sub.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), hidden)

	inactive := subscription.StatusInactive
	denied, err := s.subscriptions.Update(s.ctx, intruder.ID, sub.ID, subscription.UpdateParams{Status: &inactive})
	require.NoError(s.T(), err)
	assert.Nil(s.T(), denied)

	updated, err := s.subscriptions.Update(s.ctx, owner.ID, sub.ID, subscription.UpdateParams{Status: &inactive})
	require.NoError(s.T(), err)
	require.NotNil(s.T(), updated)
	assert.Equal(s.T(), subscription.StatusInactive, updated.Status)
	assert.Equal(s.T(), "Netflix", updated.Name)

	list, err := s.subscriptions.ListByUserID(s.ctx, owner.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), list, 1)

	err = s.subscriptions.Delete(s.ctx, intruder.ID, sub.ID)
	assert.True(s.T(), errors.Is(err, domain.ErrNotFound), "got %v", err)
	require.NoError(s.T(), s.subscriptions.Delete(s.ctx, owner.ID, sub.ID))
}
