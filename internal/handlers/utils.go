package handlers

import (
	"net/http"
	"strings"

	"github.com/damacus/newsdesk/internal/middleware"
	"github.com/damacus/newsdesk/internal/notify"
	"github.com/damacus/newsdesk/internal/utils"
	"github.com/labstack/echo/v4"
)

// HTMX events handlers emit through the HX-Trigger header
const (
	EventToastsChanged  = "toasts-changed"
	EventReportsChanged = "reports-changed"
)

// GetPresenter retrieves the session's toast presenter from the context
func GetPresenter(c echo.Context) (*notify.Presenter, error) {
	val := c.Get(utils.ContextKeyPresenter)
	if val == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "No session")
	}
	p, ok := val.(*notify.Presenter)
	if !ok || p == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "No session")
	}
	return p, nil
}

// HTMXRedirect sets the HX-Redirect header and returns a 200 OK response.
// This is used for HTMX requests that should trigger a client-side redirect.
func HTMXRedirect(c echo.Context, url string) error {
	c.Response().Header().Set("HX-Redirect", url)
	return c.NoContent(http.StatusOK)
}

// TriggerEvents appends events to the HX-Trigger response header
func TriggerEvents(c echo.Context, events ...string) {
	if len(events) == 0 {
		return
	}
	header := c.Response().Header()
	existing := header.Get("HX-Trigger")
	list := events
	if existing != "" {
		list = append([]string{existing}, events...)
	}
	header.Set("HX-Trigger", strings.Join(list, ", "))
}

// View carries what every full page needs besides its own data
type View struct {
	Locale string
}

// Page builds the data map for a page rendered inside the layout
func (v View) Page(c echo.Context, activeNav string, data map[string]interface{}) map[string]interface{} {
	csrf, _ := c.Get(middleware.CSRFContextKey).(string)
	page := map[string]interface{}{
		"ActiveNav": activeNav,
		"CSRF":      csrf,
		"Locale":    v.Locale,
	}
	for k, val := range data {
		page[k] = val
	}
	return page
}

// failureStatus picks the HTTP status that goes with a failure
func failureStatus(f notify.Failure) int {
	switch v := f.(type) {
	case notify.ResponseFailure:
		if v.Status >= 400 && v.Status < 600 {
			return v.Status
		}
		return http.StatusBadGateway
	case notify.NoResponseFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
