package middleware

import (
	"net/http"
	"strings"

	"github.com/damacus/newsdesk/internal/notify"
	"github.com/damacus/newsdesk/internal/services"
	"github.com/damacus/newsdesk/internal/utils"
	"github.com/labstack/echo/v4"
)

// Session reads the session cookie, issuing a new session when it is missing
// or cannot be opened, and binds the session's toast presenter to the context.
func Session(sessions *services.SessionService, hub *notify.Hub) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if path == "/health" || strings.HasPrefix(path, "/static/") {
				return next(c)
			}

			var sessionID string
			if cookie, err := c.Cookie(utils.CookieName); err == nil {
				if id, err := sessions.Open(cookie.Value); err == nil {
					sessionID = id
				}
			}

			if sessionID == "" {
				sessionID = sessions.NewSessionID()
				sealed, err := sessions.Seal(sessionID)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start session")
				}
				c.SetCookie(&http.Cookie{
					Name:     utils.CookieName,
					Value:    sealed,
					Path:     "/",
					HttpOnly: true,
					Secure:   isSecureRequest(c),
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(utils.ContextKeySessionID, sessionID)
			c.Set(utils.ContextKeyPresenter, hub.Presenter(sessionID))
			return next(c)
		}
	}
}
