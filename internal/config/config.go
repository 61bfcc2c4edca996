package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                         string
	DatabaseURL                  string
	AllowOrigins                 []string
	LogstashTCPAddr              string
	MinIOEndpoint                string
	MinIOAccessKey               string
	MinIOSecretKey               string
	MinIOUseSSL                  bool
	MinIOBucketDestinations      string
	MinIOPublicURL               string
	DestinationImageMaxBytes     int64
	DestinationImageMaxDimension int
	WizardSessionTTL             time.Duration
	SessionSweepInterval         time.Duration
	RunMigrations                bool
	SwaggerSpecPath              string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("DESTINATION_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	maxDimension := 3840
	if v, err := strconv.Atoi(getenv("DESTINATION_IMAGE_MAX_DIMENSION", "3840")); err == nil && v > 0 {
		maxDimension = v
	}

	return Config{
		Port:                         getenv("PORT", "8080"),
		DatabaseURL:                  must("DATABASE_URL"),
		AllowOrigins:                 splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:              getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:                must("MINIO_ENDPOINT"),
		MinIOAccessKey:               must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:               must("MINIO_SECRET_KEY"),
		MinIOUseSSL:                  getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketDestinations:      must("MINIO_BUCKET_DESTINATIONS"),
		MinIOPublicURL:               getenv("MINIO_PUBLIC_URL", ""),
		DestinationImageMaxBytes:     imageMax,
		DestinationImageMaxDimension: maxDimension,
		WizardSessionTTL:             duration("WIZARD_SESSION_TTL", 30*time.Minute),
		SessionSweepInterval:         duration("SESSION_SWEEP_INTERVAL", time.Minute),
		RunMigrations:                getenv("RUN_MIGRATIONS", "true") == "true",
		SwaggerSpecPath:              getenv("SWAGGER_SPEC_PATH", "docs/swagger.yaml"),
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func duration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(getenv(k, ""))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
