package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const streamKeepAlive = 25 * time.Second

func openStream(c echo.Context) *echo.Response {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()
	return res
}

func writeEvent(res *echo.Response, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}

// pump writes every value received on ch as an event until ch closes or the
// client goes away. Idle streams get a comment line so proxies keep them
// open.
func pump[T any](c echo.Context, ch <-chan T, render func(T) (string, any)) error {
	res := openStream(c)
	ctx := c.Request().Context()
	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case v, ok := <-ch:
			if !ok {
				return nil
			}
			event, payload := render(v)
			if err := writeEvent(res, event, payload); err != nil {
				return nil
			}
		}
	}
}
