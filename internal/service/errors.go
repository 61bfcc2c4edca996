package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDestinationNotFound       = errors.New("destination not found")
	ErrGuideNotFound             = errors.New("guide not found")
	ErrGuideExists               = errors.New("guide already exists for destination")
	ErrCatalogUnavailable        = errors.New("catalog unavailable")
	ErrCatalogValidation         = errors.New("catalog validation failed")
	ErrUnknownReference          = errors.New("referenced record does not exist")
	ErrDestinationIncomplete     = errors.New("destination requires cover image and map url")
	ErrCoverImageRequired        = errors.New("cover image required")
	ErrCoverImageTooLarge        = errors.New("cover image exceeds maximum size")
	ErrCoverImageUnsupportedType = errors.New("unsupported cover image content type")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
