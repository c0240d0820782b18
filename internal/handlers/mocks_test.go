package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/damacus/newsdesk/internal/notify"
	"github.com/damacus/newsdesk/internal/renderer"
	"github.com/damacus/newsdesk/internal/services"
	"github.com/damacus/newsdesk/internal/utils"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

// MockReportStore implements services.ReportStore for testing
type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) List(ctx context.Context) ([]services.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.Report), args.Error(1)
}

func (m *MockReportStore) Get(ctx context.Context, id string) (services.ReportContent, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(services.ReportContent), args.Error(1)
}

func (m *MockReportStore) Save(ctx context.Context, category, content string) (services.Report, error) {
	args := m.Called(ctx, category, content)
	return args.Get(0).(services.Report), args.Error(1)
}

func (m *MockReportStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReportStore) Usage(ctx context.Context) (services.Usage, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.Usage), args.Error(1)
}

// noopToolkit leaves banners on screen until dismissed
type noopToolkit struct{}

func (noopToolkit) Show(*notify.Banner, notify.ToastOptions) {}

type handlerFixture struct {
	e          *echo.Echo
	presenter  *notify.Presenter
	translator *notify.Translator
	hook       *test.Hook
}

func newFixture() *handlerFixture {
	logger, hook := test.NewNullLogger()
	e := echo.New()
	e.Renderer = renderer.New(utils.NewDateFormatter("zh-CN", time.UTC))
	return &handlerFixture{
		e:          e,
		presenter:  notify.NewPresenter(notify.NewPage(), noopToolkit{}),
		translator: notify.NewTranslator(logger),
		hook:       hook,
	}
}

// context builds a request context with the session presenter bound
func (f *handlerFixture) context(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.Set(utils.ContextKeyPresenter, f.presenter)
	return c, rec
}

func (f *handlerFixture) messages() []string {
	var out []string
	for _, b := range f.presenter.Banners() {
		out = append(out, string(b.Severity)+": "+b.Message)
	}
	return out
}
