package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/damacus/newsdesk/internal/models"
	"github.com/damacus/newsdesk/internal/notify"
	"github.com/labstack/echo/v4"
)

// DefaultTestMessage is shown when the test form has no message
const DefaultTestMessage = "This is a test notification."

var severityOptions = []models.SeverityOption{
	{Value: string(notify.SeveritySuccess), Label: "Success"},
	{Value: string(notify.SeverityInfo), Label: "Info"},
	{Value: string(notify.SeverityWarning), Label: "Warning"},
	{Value: string(notify.SeverityDanger), Label: "Danger"},
}

type SettingsHandler struct {
	View
	settings models.ConsoleSettings
	now      func() time.Time
}

func NewSettingsHandler(settings models.ConsoleSettings, view View) *SettingsHandler {
	return &SettingsHandler{
		View:     view,
		settings: settings,
		now:      time.Now,
	}
}

// ShowSettings renders the settings page with the console configuration
func (h *SettingsHandler) ShowSettings(c echo.Context) error {
	return c.Render(http.StatusOK, "settings", h.Page(c, "settings", map[string]interface{}{
		"Settings":   h.settings,
		"Severities": severityOptions,
		"ServerTime": h.now(),
	}))
}

// TestNotification shows a toast with the requested severity
func (h *SettingsHandler) TestNotification(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}

	message := strings.TrimSpace(c.FormValue("message"))
	if message == "" {
		message = DefaultTestMessage
	}
	presenter.Show(message, notify.ParseSeverity(c.FormValue("severity")))

	TriggerEvents(c, EventToastsChanged)
	return c.NoContent(http.StatusNoContent)
}
