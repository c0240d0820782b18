package handlers

import (
	"net/http"
	"testing"

	"github.com/damacus/newsdesk/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListToasts(t *testing.T) {
	f := newFixture()
	f.presenter.Show("first", notify.SeveritySuccess)
	f.presenter.Show("second", notify.SeverityWarning)

	c, rec := f.context(http.MethodGet, "/toasts", "")
	require.NoError(t, NewToastsHandler().ListToasts(c))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `id="toast-container"`)
	assert.Contains(t, body, "first")
	assert.Contains(t, body, "bg-warning")
}

func TestListToasts_Empty(t *testing.T) {
	f := newFixture()

	c, rec := f.context(http.MethodGet, "/toasts", "")
	require.NoError(t, NewToastsHandler().ListToasts(c))

	assert.Contains(t, rec.Body.String(), `id="toast-container"`)
	assert.NotContains(t, rec.Body.String(), "toast-body")
}

func TestDismissToast(t *testing.T) {
	f := newFixture()
	keep := f.presenter.Show("keep", notify.SeverityInfo)
	drop := f.presenter.Show("drop", notify.SeverityInfo)

	c, rec := f.context(http.MethodPost, "/toasts/"+drop.ID+"/dismiss", "")
	c.SetParamNames("id")
	c.SetParamValues(drop.ID)
	require.NoError(t, NewToastsHandler().DismissToast(c))

	assert.True(t, drop.Hidden())
	assert.False(t, keep.Hidden())
	assert.NotContains(t, rec.Body.String(), "drop")
	assert.Contains(t, rec.Body.String(), "keep")

	// dismissing again is harmless
	c, rec = f.context(http.MethodPost, "/toasts/"+drop.ID+"/dismiss", "")
	c.SetParamNames("id")
	c.SetParamValues(drop.ID)
	require.NoError(t, NewToastsHandler().DismissToast(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
