package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Contabilidad-api/internal/application/auth"
	"github.com/jhoicas/Contabilidad-api/internal/application/extraction"
	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/review"
	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
	infraai "github.com/jhoicas/Contabilidad-api/internal/infrastructure/ai"
	infraexcel "github.com/jhoicas/Contabilidad-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Contabilidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/queue"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Contabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/Contabilidad-api/pkg/config"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	expenseTypeRepo := postgres.NewExpenseTypeRepository(pool)
	uploadRepo := postgres.NewInvoiceUploadRepository(pool)
	draftRepo := postgres.NewReviewDraftRepository(pool)
	entryRepo := postgres.NewAccountingEntryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Almacenamiento de PDF subidos
	store, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de uploads")
	}

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, uploadRepo, entryRepo)
	expenseTypeUC := usecase.NewExpenseTypeUseCase(expenseTypeRepo, entryRepo, draftRepo)
	reviewUC := review.NewUseCase(uploadRepo, draftRepo, entryRepo, expenseTypeRepo)
	commitUC := ledger.NewCommitEntryUseCase(txRunner, uploadRepo, draftRepo, expenseTypeRepo, entryRepo)
	reportUC := usecase.NewReportUseCase(entryRepo, companyRepo,
		infrapdf.NewMarotoReportGenerator(), infraexcel.NewEntriesExporter())

	// Tubería de extracción: extractor OpenAI + cola en proceso
	extractor := infraai.NewOpenAIExtractor(cfg.Extraction.OpenAIAPIKey, cfg.Extraction.Model)
	extractionSvc := extraction.NewService(extractor, uploadRepo, reviewUC,
		time.Duration(cfg.Extraction.TimeoutSec)*time.Second, log)
	extractionQueue := queue.NewExtractionQueue(extractionSvc, cfg.Extraction.Workers, cfg.Extraction.QueueSize, log)

	uploadUC := usecase.NewUploadUseCase(uploadRepo, companyRepo, store, extractionQueue, cfg.Storage.MaxUploadBytes, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Storage.MaxUploadBytes) + 1024*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Contabilidad API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     companyUC,
		ExpenseTypeUC: expenseTypeUC,
		UploadUC:      uploadUC,
		ReviewUC:      reviewUC,
		CommitUC:      commitUC,
		ReportUC:      reportUC,
		CompanyRepo:   companyRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Drenar los trabajos de extracción en vuelo antes de soltar el pool.
	extractionQueue.Shutdown(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
