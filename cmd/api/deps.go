package main

import (
	"log/slog"

	"finman/internal/domain/budget"
	"finman/internal/domain/prediction"
	"finman/internal/domain/report"
	"finman/internal/domain/subscription"
	"finman/internal/domain/transaction"
	"finman/internal/domain/user"
	"finman/internal/infrastructure/database"
	httphandlers "finman/internal/interfaces/http"
	"finman/internal/shared/auth"
	"finman/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *database.DB

	// Handlers
	HealthHandler       *httphandlers.HealthHandler
	AuthHandler         *httphandlers.AuthHandler
	TransactionHandler  *httphandlers.TransactionHandler
	BudgetHandler       *httphandlers.BudgetHandler
	SubscriptionHandler *httphandlers.SubscriptionHandler
	SummaryHandler      *httphandlers.SummaryHandler
	PredictionHandler   *httphandlers.PredictionHandler

	// Session resolution for the auth middleware
	UserService *user.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := database.New(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	slog.Info("connected to database", "driver", db.Driver())

	// Repositories
	userRepo := database.NewUserRepository(db)
	transactionRepo := database.NewTransactionRepository(db)
	budgetRepo := database.NewBudgetRepository(db)
	subscriptionRepo := database.NewSubscriptionRepository(db)

	// Domain services
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	userService := user.NewService(userRepo, jwt)
	transactionService := transaction.NewService(transactionRepo, transaction.DefaultClassifier())
	budgetService := budget.NewService(budgetRepo, transactionRepo)
	subscriptionService := subscription.NewService(subscriptionRepo)
	reportService := report.NewService(transactionRepo)
	predictionService := prediction.NewService(transactionRepo)

	return &Dependencies{
		DB:                  db,
		HealthHandler:       httphandlers.NewHealthHandler(db),
		AuthHandler:         httphandlers.NewAuthHandler(userService),
		TransactionHandler:  httphandlers.NewTransactionHandler(transactionService),
		BudgetHandler:       httphandlers.NewBudgetHandler(budgetService),
		SubscriptionHandler: httphandlers.NewSubscriptionHandler(subscriptionService),
		SummaryHandler:      httphandlers.NewSummaryHandler(reportService),
		PredictionHandler:   httphandlers.NewPredictionHandler(predictionService),
		UserService:         userService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
