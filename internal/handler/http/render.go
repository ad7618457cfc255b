package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/internal/validators"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout.html"

const titlePrefix = "Expense Tracker | "

var templateFuncs = template.FuncMap{
	"amount": validators.FormatAmount,
	"date": func(t time.Time) string {
		return t.Format(time.DateOnly)
	},
}

// views holds one template set per page, each cloned from the layout.
type views struct {
	pages map[string]*template.Template
}

func newViews() *views {
	layout := template.Must(template.New(layoutTemplate).Funcs(templateFuncs).
		ParseFS(templateFS, "templates/"+layoutTemplate))

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	v := &views{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := path.Base(file)
		if name == layoutTemplate {
			continue
		}
		page := template.Must(layout.Clone())
		v.pages[strings.TrimSuffix(name, ".html")] = template.Must(page.ParseFS(templateFS, file))
	}

	return v
}

// pageData is passed to every template.
type pageData struct {
	Title    string
	SignedIn bool
	Flash    flash
	Data     any
}

// errorPage is the Data of the error template.
type errorPage struct {
	Status  int
	Message string
	Detail  string
}

// render executes page into a buffer first, so a template failure still
// produces a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	log := logger.FromRequest(r)

	tmpl, ok := h.views.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	_, signedIn := utils.GetUserIDFromContext(r.Context())
	pd := pageData{
		Title:    titlePrefix + title,
		SignedIn: signedIn,
		Flash:    h.popFlash(w, r),
		Data:     data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, pd); err != nil {
		log.Err(err).Str("page", page).Msg("template execution failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderError shows the error page with the status mapped from err. The
// error text is only exposed in development.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	page := errorPage{
		Status:  status,
		Message: http.StatusText(status),
	}
	if h.development {
		page.Detail = err.Error()
	}

	h.render(w, r, status, "error", "Error", page)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, ErrPageNotFound)
}
