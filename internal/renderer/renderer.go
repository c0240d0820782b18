package renderer

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"regexp"
	"sort"

	"github.com/damacus/newsdesk/internal/utils"
	"github.com/labstack/echo/v4"
)

//go:embed views
var views embed.FS

// assetURL matches the origin of an absolute script or stylesheet URL
var assetURL = regexp.MustCompile(`(?:src|href)="(https://[^"/]+)/`)

// AssetOrigins returns the external origins the layout loads assets from,
// sorted and without duplicates.
func AssetOrigins() []string {
	layout, err := views.ReadFile("views/layouts/base.html")
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var origins []string
	for _, m := range assetURL.FindAllStringSubmatch(string(layout), -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			origins = append(origins, m[1])
		}
	}
	sort.Strings(origins)
	return origins
}

// TemplateRenderer implements echo.Renderer
type TemplateRenderer struct {
	Templates map[string]*template.Template
}

// New creates a TemplateRenderer with pre-parsed templates that format dates with dates
func New(dates utils.DateFormatter) *TemplateRenderer {
	r := &TemplateRenderer{
		Templates: make(map[string]*template.Template),
	}
	r.parseTemplates(Funcs(dates))
	return r
}

// Funcs returns the template helpers shared by every view
func Funcs(dates utils.DateFormatter) template.FuncMap {
	return template.FuncMap{
		"formatDateTime": dates.Format,
		"formatTime":     dates.FormatTime,
		"formatFileSize": utils.FormatFileSize,
		"timeAgo":        utils.FormatRelative,
	}
}

func (t *TemplateRenderer) parseTemplates(funcs template.FuncMap) {
	// Helper to parse layout + page + the partials pages embed
	parse := func(name, pageFile string) {
		t.Templates[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(views,
			"views/layouts/base.html",
			"views/partials/reports_table.html",
			"views/pages/"+pageFile,
		))
	}

	parse("dashboard", "dashboard.html")
	parse("reports", "reports.html")
	parse("report", "report.html")
	parse("settings", "settings.html")

	// Partials
	partial := func(name string) {
		t.Templates[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(views, "views/partials/"+name+".html"))
	}
	partial("reports_table")
	partial("storage_widget")
	partial("toasts")
}

// selfExecutingTemplates lists templates that execute their own named block instead of "base"
var selfExecutingTemplates = map[string]bool{
	"reports_table":  true,
	"storage_widget": true,
	"toasts":         true,
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.Templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}

	// Templates that define their own named block execute that block directly
	if selfExecutingTemplates[name] {
		return tmpl.ExecuteTemplate(w, name, data)
	}
	// All other templates (pages with layout) execute the "base" block
	return tmpl.ExecuteTemplate(w, "base", data)
}
