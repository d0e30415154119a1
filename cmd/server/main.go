package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"medgen/internal/config"
	"medgen/internal/extractor"
	"medgen/internal/handler"
	"medgen/internal/registry"
	"medgen/internal/repository/postgres"
	"medgen/internal/resolver"
	"medgen/internal/retriever"
	"medgen/internal/router"
	"medgen/internal/service"
	"medgen/internal/storage/s3"
	"medgen/internal/synthesis"
	"medgen/internal/synthesis/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	auditRepo := postgres.NewReportAuditRepo(db)

	storage, err := s3.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Pipeline components
	registryClient := registry.NewClient(&cfg.Registry)
	res := resolver.New(cfg.Resolver.HostMarkers...)
	ret := retriever.New(&cfg.Retriever)

	ocr := extractor.NewTesseractOCR(cfg.Extractor.TesseractBin)
	ext := extractor.New(&cfg.Extractor, ocr)
	if ext.OCRAvailable() {
		log.Printf("extractor: OCR backend available")
	} else {
		log.Printf("extractor: OCR backend unavailable, image text extraction degraded")
	}

	llm := openai.NewClient(&cfg.Synthesizer)
	orch := synthesis.NewOrchestrator(llm,
		synthesis.WithTemperature(cfg.Synthesizer.Temperature),
		synthesis.WithMaxTokens(cfg.Synthesizer.Stage1MaxTokens, cfg.Synthesizer.Stage2MaxTokens),
	)

	reportSvc := service.NewReportService(registryClient, res, ret, ext, orch, storage, auditRepo, cfg.S3.Bucket)

	// Handlers
	reportH := handler.NewReportHandler(reportSvc)
	documentH := handler.NewDocumentHandler(reportSvc, cfg.Retriever.MaxFileSizeMB*1024*1024)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg.JWT, reportH, documentH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
