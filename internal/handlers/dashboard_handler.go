package handlers

import (
	"net/http"

	"github.com/damacus/newsdesk/internal/notify"
	"github.com/damacus/newsdesk/internal/services"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	View
	store      services.ReportStore
	backend    string
	translator *notify.Translator
}

func NewDashboardHandler(store services.ReportStore, backend string, translator *notify.Translator, view View) *DashboardHandler {
	return &DashboardHandler{View: view, store: store, backend: backend, translator: translator}
}

// Dashboard renders the landing page
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard", h.Page(c, "dashboard", nil))
}

// GetStorageWidget returns report storage stats for the dashboard
func (h *DashboardHandler) GetStorageWidget(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}

	usage, err := h.store.Usage(c.Request().Context())
	if err != nil {
		h.translator.Handle(presenter, services.ClassifyError(err))
		TriggerEvents(c, EventToastsChanged)
		return c.Render(http.StatusOK, "storage_widget", map[string]interface{}{
			"Error": true,
		})
	}

	return c.Render(http.StatusOK, "storage_widget", map[string]interface{}{
		"Usage":   usage,
		"Backend": h.backend,
	})
}
