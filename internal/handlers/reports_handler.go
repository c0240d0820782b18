package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/damacus/newsdesk/internal/notify"
	"github.com/damacus/newsdesk/internal/services"
	"github.com/labstack/echo/v4"
)

type ReportsHandler struct {
	View
	store      services.ReportStore
	translator *notify.Translator
}

func NewReportsHandler(store services.ReportStore, translator *notify.Translator, view View) *ReportsHandler {
	return &ReportsHandler{View: view, store: store, translator: translator}
}

// ListReports renders the reports page
func (h *ReportsHandler) ListReports(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}

	reports, err := h.store.List(c.Request().Context())
	if err != nil {
		h.translator.Handle(presenter, services.ClassifyError(err))
	}

	return c.Render(http.StatusOK, "reports", h.Page(c, "reports", map[string]interface{}{
		"Reports": reports,
	}))
}

// ReportsTable renders just the table, for HTMX refreshes
func (h *ReportsHandler) ReportsTable(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}
	return h.renderTable(c, presenter)
}

// ViewReport renders a single report
func (h *ReportsHandler) ViewReport(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}

	report, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.pageError(presenter, err)
	}

	return c.Render(http.StatusOK, "report", h.Page(c, "reports", map[string]interface{}{
		"Report": report,
	}))
}

// DownloadReport sends the raw Markdown
func (h *ReportsHandler) DownloadReport(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}

	report, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.pageError(presenter, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.ID))
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Content))
}

// CreateReport saves a report from the form
func (h *ReportsHandler) CreateReport(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}

	category := strings.TrimSpace(c.FormValue("category"))
	content := c.FormValue("content")

	report, err := h.store.Save(c.Request().Context(), category, content)
	if err != nil {
		return h.actionError(c, presenter, err)
	}

	presenter.Show("Report saved: "+report.ID, notify.SeveritySuccess)
	TriggerEvents(c, EventToastsChanged, EventReportsChanged)
	return h.renderTable(c, presenter)
}

// DeleteReport removes a report
func (h *ReportsHandler) DeleteReport(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		return h.actionError(c, presenter, err)
	}

	presenter.Show("Report deleted: "+id, notify.SeveritySuccess)
	// the viewer page is gone, send the browser back to the list
	if c.FormValue("from") == "viewer" {
		return HTMXRedirect(c, "/reports")
	}
	TriggerEvents(c, EventToastsChanged, EventReportsChanged)
	return h.renderTable(c, presenter)
}

func (h *ReportsHandler) renderTable(c echo.Context, presenter *notify.Presenter) error {
	reports, err := h.store.List(c.Request().Context())
	if err != nil {
		h.translator.Handle(presenter, services.ClassifyError(err))
		TriggerEvents(c, EventToastsChanged)
	}
	return c.Render(http.StatusOK, "reports_table", map[string]interface{}{
		"Reports": reports,
	})
}

// actionError shows the failure as a toast and leaves the page as it is
func (h *ReportsHandler) actionError(c echo.Context, presenter *notify.Presenter, err error) error {
	failure := services.ClassifyError(err)
	h.translator.Handle(presenter, failure)
	TriggerEvents(c, EventToastsChanged)
	return c.NoContent(failureStatus(failure))
}

// pageError answers a page request that cannot be served
func (h *ReportsHandler) pageError(presenter *notify.Presenter, err error) error {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Report not found")
	case errors.Is(err, services.ErrInvalidReportID):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report id")
	}
	failure := services.ClassifyError(err)
	message := h.translator.Handle(presenter, failure)
	return echo.NewHTTPError(failureStatus(failure), message)
}
