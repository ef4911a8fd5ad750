package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"
	"p9e.in/assettrack/config"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/pkg/logger"
	"p9e.in/assettrack/pkg/services"
	"p9e.in/assettrack/pkg/storage"
	"p9e.in/assettrack/repository"
	"p9e.in/assettrack/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := config.Connect(cfg, log)
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}

	ctx := context.Background()
	archive, err := storage.New(ctx, storage.Options{
		Kind:        cfg.Archive.Kind,
		Dir:         cfg.Archive.Dir,
		GCSBucket:   cfg.Archive.GCSBucket,
		S3Endpoint:  cfg.Archive.S3.Endpoint,
		S3AccessKey: cfg.Archive.S3.AccessKey,
		S3SecretKey: cfg.Archive.S3.SecretKey,
		S3Bucket:    cfg.Archive.S3.Bucket,
		S3UseSSL:    cfg.Archive.S3.UseSSL,
	})
	if err != nil {
		log.Fatal("could not open report storage", zap.String("kind", cfg.Archive.Kind), zap.Error(err))
	}
	if c, ok := archive.(io.Closer); ok {
		defer c.Close()
	}

	var logo []byte
	if cfg.ReportLogoPath != "" {
		if logo, err = os.ReadFile(cfg.ReportLogoPath); err != nil {
			log.Warn("report logo not loaded", zap.String("path", cfg.ReportLogoPath), zap.Error(err))
		}
	}

	catalogRepo := repository.NewCatalogRepository(db)
	handler := routes.RegisterRoutes(routes.Deps{
		AnonKey:     cfg.AnonKey,
		Tokens:      middleware.NewTokens(cfg.JWTSecret),
		Auth:        services.NewAuthService(repository.NewUserRepository(db)),
		Catalog:     services.NewCatalogService(catalogRepo),
		Inspections: services.NewInspectionService(repository.NewInspectionRepository(db), catalogRepo),
		Proposals:   services.NewProposalService(repository.NewProposalRepository(db)),
		Archive:     archive,
		Logo:        logo,
		Log:         log,
	})

	log.Info("server starting", zap.String("port", cfg.Port), zap.String("version", Version))
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
