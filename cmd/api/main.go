package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/composer"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/config"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/logging"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/media"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/minio"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/service"
	transport "github.com/njprem/TravelerGuide_APP_BackEnd/internal/transport/http"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/wizard"
	"github.com/njprem/TravelerGuide_APP_BackEnd/migrations"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		shipper, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Fatalf("logstash: %v", err)
		}
		defer shipper.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, shipper))
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		provider, err := goose.NewProvider(goose.DialectPostgres, db.DB, migrations.FS)
		if err != nil {
			log.Fatalf("migrations: %v", err)
		}
		results, err := provider.Up(context.Background())
		if err != nil {
			log.Fatalf("migrations: %v", err)
		}
		log.Printf("applied %d migrations", len(results))
	}

	notifier, err := postgres.NewNotifier(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("catalog notifier: %v", err)
	}
	defer notifier.Close()

	minioClient, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}
	storage := minio.NewStorage(minioClient)
	bucketCtx, cancelBucket := context.WithTimeout(context.Background(), 10*time.Second)
	if err := storage.EnsureBucket(bucketCtx, cfg.MinIOBucketDestinations); err != nil {
		log.Printf("Warning: %v", err)
	}
	cancelBucket()

	catalog := service.NewCatalogRepository(postgres.NewCatalogRepo(db), notifier, storage, service.CatalogConfig{
		Bucket:            cfg.MinIOBucketDestinations,
		PublicBaseURL:     cfg.MinIOPublicURL,
		ImageMaxBytes:     cfg.DestinationImageMaxBytes,
		ImageMaxDimension: cfg.DestinationImageMaxDimension,
		ImageProcessor:    media.NewScaleProcessor(cfg.DestinationImageMaxDimension),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wizards := wizard.NewRegistry(catalog, cfg.WizardSessionTTL)
	drafts := composer.NewRegistry(cfg.WizardSessionTTL)
	go wizards.Run(ctx, cfg.SessionSweepInterval)
	go drafts.Run(ctx, cfg.SessionSweepInterval)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterBrowse(e, service.NewBrowseService(catalog))
	transport.RegisterCategories(e, service.NewCategoryService(catalog))
	transport.RegisterWizards(e, wizards, cfg.DestinationImageMaxBytes)
	transport.RegisterPostDrafts(e, drafts)
	transport.RegisterSwagger(e, cfg.SwaggerSpecPath)

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
