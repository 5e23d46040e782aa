package main

import (
	"log/slog"
	"net/http"

	"finman/internal/shared/config"
	"finman/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc(middleware.HealthPath, deps.HealthHandler.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.UserService)
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMiddleware(h))
	}

	protect("/api/auth/profile", deps.AuthHandler.HandleProfile)

	protect("/api/transactions", deps.TransactionHandler.HandleTransactions)
	protect("/api/transactions/filter", deps.TransactionHandler.HandleFilter)
	protect("/api/transactions/{id}", deps.TransactionHandler.HandleTransactionByID)

	protect("/api/budget/set", deps.BudgetHandler.HandleSet)
	protect("/api/budget/get", deps.BudgetHandler.HandleGet)
	protect("/api/budget/update", deps.BudgetHandler.HandleUpdate)
	protect("/api/budget/delete", deps.BudgetHandler.HandleDelete)
	protect("/api/budget/track-progress", deps.BudgetHandler.HandleTrackProgress)

	protect("/api/subscription/create", deps.SubscriptionHandler.HandleCreate)
	protect("/api/subscription/all", deps.SubscriptionHandler.HandleList)
	protect("/api/subscription/{id}", deps.SubscriptionHandler.HandleSubscriptionByID)

	protect("/api/dashboard/summary", deps.SummaryHandler.HandleSummary)
	protect("/api/dashboard/category-wise", deps.SummaryHandler.HandleCategoryWise)
	protect("/api/dashboard/monthly-report", deps.SummaryHandler.HandleMonthlyReport)
	protect("/api/dashboard/yearly-report", deps.SummaryHandler.HandleYearlyReport)

	protect("/api/ai/spending-analysis", deps.PredictionHandler.HandleSpendingAnalysis)
	protect("/api/ai/budget-prediction", deps.PredictionHandler.HandleBudgetPrediction)
	protect("/api/ai/savings-suggestions", deps.PredictionHandler.HandleSavingsSuggestions)

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedOrigins)(mux))
	handler = middleware.Tracing(handler)

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		slog.Info("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
