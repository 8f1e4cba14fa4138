package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/bsanalyst/backend/internal/ai"
	"github.com/bsanalyst/backend/internal/config"
	"github.com/bsanalyst/backend/internal/handler"
	"github.com/bsanalyst/backend/internal/middleware"
	"github.com/bsanalyst/backend/internal/pdf"
	"github.com/bsanalyst/backend/internal/repo"
	"github.com/bsanalyst/backend/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bsanalyst",
		Short: "balance sheet analyst backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run bsanalyst server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	userRepo := repo.NewUserRepo(db)
	companyRepo := repo.NewCompanyRepo(db)
	accessRepo := repo.NewAccessRepo(db)
	documentRepo := repo.NewDocumentRepo(db)
	chunkRepo := repo.NewChunkRepo(db)

	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	companyService := service.NewCompanyService(companyRepo, accessRepo)
	documentService := service.NewDocumentService(documentRepo)
	ingestService := service.NewIngestService(documentRepo, chunkRepo, pdf.NewExtractor(), cfg.ChunkMaxChars)
	answerService := service.NewAnswerService(chunkRepo, companyRepo, aiProvider, service.AnswerOptions{
		Models:          cfg.AI.Models,
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
		Temperature:     cfg.AI.Temperature,
		Timeout:         time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		SearchLimit:     cfg.Retrieval.SearchLimit,
		FallbackLimit:   cfg.Retrieval.FallbackLimit,
	})

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Companies: handler.NewCompanyHandler(companyService),
		Documents: handler.NewDocumentHandler(documentService, companyService, ingestService),
		Ask:       handler.NewAskHandler(answerService, companyService),
		Status:    handler.NewStatusHandler(aiProvider, cfg.AI.Models),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
