package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorBody is the uniform error envelope returned by every endpoint
type ErrorBody struct {
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewHTTPErrorHandler returns an echo error handler that renders every error
// as an ErrorBody. Non-HTTP errors become opaque 500s; their detail goes to
// the log, not the client.
func NewHTTPErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		} else {
			log.WithError(err).WithField("path", c.Request().URL.Path).Error("unhandled error")
		}

		body := ErrorBody{
			Status:    status,
			Detail:    http.StatusText(status),
			Message:   message,
			CreatedAt: time.Now(),
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
