package handlers

import (
	"net/http"

	"github.com/damacus/newsdesk/internal/notify"
	"github.com/labstack/echo/v4"
)

type ToastsHandler struct{}

func NewToastsHandler() *ToastsHandler {
	return &ToastsHandler{}
}

// ListToasts renders the session's toast container
func (h *ToastsHandler) ListToasts(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}
	return renderToasts(c, presenter)
}

// DismissToast hides a toast at the user's request
func (h *ToastsHandler) DismissToast(c echo.Context) error {
	presenter, err := GetPresenter(c)
	if err != nil {
		return err
	}
	// already hidden toasts just re-render
	presenter.Dismiss(c.Param("id"))
	return renderToasts(c, presenter)
}

func renderToasts(c echo.Context, presenter *notify.Presenter) error {
	return c.Render(http.StatusOK, "toasts", map[string]interface{}{
		"Container": presenter.Container(),
		"Banners":   presenter.Banners(),
	})
}
