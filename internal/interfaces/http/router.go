package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contabilidad-api/internal/application/auth"
	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/review"
	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	ExpenseTypeUC *usecase.ExpenseTypeUseCase
	UploadUC      *usecase.UploadUseCase
	ReviewUC      *review.UseCase
	CommitUC      *ledger.CommitEntryUseCase
	ReportUC      *usecase.ReportUseCase
	CompanyRepo   repository.CompanyRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies y catálogo de tipos de gasto: registros globales, no requieren
	// empresa activa.
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Delete("/:id", RequireRole(entity.RoleAdmin), companyHandler.Delete)

	expenseTypes := protected.Group("/expense-types")
	expenseTypeHandler := NewExpenseTypeHandler(deps.ExpenseTypeUC)
	expenseTypes.Get("/", expenseTypeHandler.List)
	expenseTypes.Post("/", expenseTypeHandler.Create)
	expenseTypes.Put("/reorder", expenseTypeHandler.Reorder)
	expenseTypes.Delete("/:id", RequireRole(entity.RoleAdmin), expenseTypeHandler.Delete)

	// Rutas contables: particionadas por la empresa activa (X-Company-ID).
	scoped := protected.Group("/", ActiveCompanyMiddleware(deps.CompanyRepo))

	uploads := scoped.Group("/uploads")
	uploadHandler := NewUploadHandler(deps.UploadUC)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	entryHandler := NewEntryHandler(deps.CommitUC, deps.ReportUC)
	uploads.Post("/", uploadHandler.Create)
	uploads.Get("/", uploadHandler.ListQueue)
	uploads.Get("/:id", uploadHandler.GetByID)
	uploads.Get("/:id/file", uploadHandler.File)
	uploads.Get("/:id/review", reviewHandler.Get)
	uploads.Patch("/:id/review", reviewHandler.Patch)
	uploads.Post("/:id/commit", entryHandler.Commit)

	entries := scoped.Group("/entries")
	entries.Get("/", entryHandler.List)
	entries.Get("/export.xlsx", entryHandler.ExportXLSX)

	reports := scoped.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/years", reportHandler.YearlyOverview)
	reports.Get("/annual-pl", reportHandler.AnnualPL)
	reports.Get("/annual-pl/pdf", reportHandler.AnnualPLPDF)
}
