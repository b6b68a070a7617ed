package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"paycalc/http-server/admin"
	"paycalc/http-server/employees"
	"paycalc/http-server/fixedcosts"
	"paycalc/http-server/health"
	"paycalc/http-server/report"
	"paycalc/http-server/sales"
	"paycalc/http-server/settings"
	"paycalc/http-server/summary"
	"paycalc/http-server/suppliers"
	"paycalc/internal/config"
	"paycalc/internal/middleware/auth"
	"paycalc/internal/service/export"
	"paycalc/internal/service/payroll"
	"paycalc/internal/storage"
	"paycalc/internal/storage/sqlstore"
)

func routes(cfg config.Config, log *slog.Logger, st *sqlstore.Storage, payrollService *payroll.Service, exportService *export.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", health.Healthz(log, st))

	router.Route("/api", func(r chi.Router) {
		r.Get("/summary", summary.GetSummary(log, payrollService))
		r.Get("/summary/what-if", summary.GetWhatIf(log, payrollService))
		r.Post("/commission/preview", summary.PreviewCommission(log))

		r.Get("/suppliers", suppliers.GetSuppliers(log, st))
		r.Put("/suppliers", suppliers.ReplaceSuppliers(log, st))
		r.Post("/suppliers", suppliers.CreateSupplier(log, st))
		r.Delete("/suppliers/{id}", suppliers.DeleteSupplier(log, st))
		r.Post("/suppliers/{id}/products", suppliers.AddProduct(log, st))
		r.Delete("/suppliers/{id}/products/{productID}", suppliers.DeleteProduct(log, st))

		r.Get("/employees", employees.GetEmployees(log, st))
		r.Put("/employees", employees.ReplaceEmployees(log, st))
		r.Post("/employees", employees.CreateEmployee(log, st))
		r.Put("/employees/{id}", employees.UpdateEmployee(log, st))
		r.Delete("/employees/{id}", employees.DeleteEmployee(log, st))

		r.Get("/sales", sales.GetSales(log, st))
		r.Put("/sales", sales.ReplaceSales(log, st))
		r.Delete("/sales", sales.ClearSales(log, st))
		r.Put("/sales/{employeeID}", sales.SaveEntry(log, st))
		r.Delete("/sales/{employeeID}", sales.DeleteEntry(log, st))
		r.Get("/product-sales", sales.GetProductSales(log, st))
		r.Put("/product-sales", sales.ReplaceProductSales(log, st))

		r.Get("/locations", fixedcosts.GetLocations(log, st))
		r.Put("/locations", fixedcosts.ReplaceLocations(log, st))
		r.Post("/locations", fixedcosts.CreateLocation(log, st))
		r.Delete("/locations/{id}", fixedcosts.DeleteLocation(log, st))
		r.Get("/expenses", fixedcosts.GetExpenses(log, st))
		r.Put("/expenses", fixedcosts.ReplaceExpenses(log, st))
		r.Post("/expenses", fixedcosts.CreateExpense(log, st))
		r.Delete("/expenses/{id}", fixedcosts.DeleteExpense(log, st))

		r.Get("/settings", settings.GetSettings(log, st))
		r.Put("/settings", settings.SaveSettings(log, st))

		r.Get("/export/config", report.ExportConfig(log, exportService))
		r.Get("/export/suppliers", report.ExportSuppliers(log, exportService))
		r.Get("/export/employees", report.ExportEmployees(log, exportService))
		r.Get("/export/results.csv", report.ExportResultsCSV(log, exportService))
		r.Get("/export/report.xlsx", report.ExportReportXLSX(log, exportService))

		adminRouter := chi.NewRouter()
		adminRouter.Use(auth.BasicAuth(auth.DefaultRealm, cfg.AdminLogin, cfg.AdminPass))

		adminRouter.Post("/import/suppliers", admin.ImportSuppliers(log, st))
		adminRouter.Post("/import/employees", admin.ImportEmployees(log, st))
		adminRouter.Post("/reset", admin.Reset(log, st, resetDefaults(cfg)))

		r.Mount("/admin", adminRouter)
	})

	return router
}

// resetDefaults are the settings a reset restores.
func resetDefaults(cfg config.Config) storage.Settings {
	defaults := storage.DefaultSettings()
	if cfg.CurrencySymbol != "" {
		defaults.CurrencySymbol = cfg.CurrencySymbol
	}
	return defaults
}
