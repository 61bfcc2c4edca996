package http

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	HeaderCreatorID   = "X-Creator-ID"
	contextCreatorKey = "creator_id"
)

// IdentifyCreator copies the caller-supplied creator id into the request
// context. The id is taken at face value.
func IdentifyCreator() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := strings.TrimSpace(c.Request().Header.Get(HeaderCreatorID)); id != "" {
				c.Set(contextCreatorKey, id)
			}
			return next(c)
		}
	}
}

func CurrentCreator(c echo.Context) string {
	id, _ := c.Get(contextCreatorKey).(string)
	return id
}

// resolveCreator prefers an id from the request body over the header.
func resolveCreator(c echo.Context, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	return CurrentCreator(c)
}
