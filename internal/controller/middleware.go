package controller

import (
	"strings"
	"time"

	"review-lifecycle-api/internal/auth"
	"review-lifecycle-api/internal/entity"

	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"
)

const sessionKey = "session"

// sessionMiddleware attaches the caller's session when the request carries a
// valid bearer token. Requests without one continue anonymously; handlers
// that need a session get ErrUnauthenticated from the service.
func sessionMiddleware(tokens *auth.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				session, err := tokens.Parse(token)
				if err != nil {
					log.WithError(err).Debug("ignoring bearer token")
				} else {
					c.Set(sessionKey, session)
				}
			}

			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) *entity.Session {
	session, _ := c.Get(sessionKey).(*entity.Session)
	return session
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if c.Path() == "/api/ping" {
			return err
		}

		entry := log.WithFields(log.Fields{
			"method":  c.Request().Method,
			"path":    c.Request().URL.Path,
			"status":  c.Response().Status,
			"latency": time.Since(start).String(),
		})
		if err != nil {
			entry.WithError(err).Warn("request failed")
		} else {
			entry.Info("request handled")
		}

		return err
	}
}
