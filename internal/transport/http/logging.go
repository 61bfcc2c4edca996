package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
)

// Keys whose values never reach the log.
var redactedKeys = []string{"secret", "token", "access_key", "password"}

type requestLogLine struct {
	Time      string `json:"time"`
	CreatorID string `json:"creator_id"`
	LatencyMS int64  `json:"latency_ms"`
	Request   struct {
		Method string `json:"method"`
		URI    string `json:"uri"`
		Body   any    `json:"body,omitempty"`
	} `json:"request"`
	Response struct {
		Status int    `json:"status"`
		Body   any    `json:"body,omitempty"`
		Error  string `json:"error,omitempty"`
	} `json:"response"`
}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			line := requestLogLine{
				Time:      v.StartTime.Format(time.RFC3339),
				CreatorID: creatorForLog(c),
				LatencyMS: v.Latency.Milliseconds(),
			}
			line.Request.Method = v.Method
			line.Request.URI = v.URI
			line.Request.Body = c.Get(requestBodyLogKey)
			line.Response.Status = v.Status
			line.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				line.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(line)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: isStreamRequest,
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
				c.Set(requestBodyLogKey, summary)
			}
			if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
				c.Set(responseBodyLogKey, summary)
			}
		},
	}))
}

// Event streams stay open for minutes; buffering them for the log would grow
// without bound.
func isStreamRequest(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasSuffix(path, "/watch") || strings.HasSuffix(path, "/events")
}

func creatorForLog(c echo.Context) string {
	if id := CurrentCreator(c); id != "" {
		return id
	}
	return "anonymous"
}

func sanitizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}
	trimmedType := strings.TrimSpace(contentType)
	loweredType := strings.ToLower(trimmedType)

	if strings.HasPrefix(loweredType, "multipart/form-data") {
		return sanitizeMultipart(body, trimmedType)
	}
	if strings.HasPrefix(loweredType, "application/json") || json.Valid(body) {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return limitJSONSize(sanitizeJSON(data, ""))
		}
	}
	if containsBinaryBytes(body) {
		return "binary"
	}
	return clampString(string(body))
}

func limitJSONSize(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]any{
		"_truncated": true,
		"_preview":   clampString(string(buf)),
	}
}

func sanitizeJSON(value any, keyHint string) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = sanitizeJSON(val, strings.ToLower(key))
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = sanitizeJSON(item, keyHint)
		}
		return result
	case string:
		return sanitizeStringValue(v, keyHint)
	default:
		if isRedactedKey(keyHint) {
			return "redacted"
		}
		return v
	}
}

func sanitizeStringValue(value, keyHint string) string {
	if isRedactedKey(keyHint) {
		return "redacted"
	}
	if containsBinaryBytes([]byte(value)) {
		return "binary"
	}
	return clampString(value)
}

func isRedactedKey(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range redactedKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

// sanitizeMultipart keeps text fields and replaces file parts with their
// name and size.
func sanitizeMultipart(body []byte, contentType string) any {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["boundary"] == "" {
		return "binary"
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	fields := make(map[string]any)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "binary"
		}
		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}

		data, readErr := io.ReadAll(part)
		var value any
		switch {
		case part.FileName() != "":
			value = map[string]any{"file_name": part.FileName(), "bytes": len(data)}
		case readErr != nil:
			value = "binary"
		default:
			value = sanitizeStringValue(string(data), strings.ToLower(name))
		}
		_ = part.Close()
		fields[name] = value
	}
	if len(fields) == 0 {
		return "binary"
	}
	return limitJSONSize(fields)
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
