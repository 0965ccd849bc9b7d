package views

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names renderable by Renderer.
const (
	PageSuccess    = "success.html"
	PageProcessing = "processing.html"
	PageNotFound   = "notfound.html"
	PageError      = "error.html"
)

// PageData carries everything the payment pages display. Only the fields the
// named page uses need to be set.
type PageData struct {
	PaymentID  string
	Status     string
	InviteLink string
	Error      string
}

// Renderer renders the client-facing payment pages from embedded templates.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewRenderer parses the embedded page templates. It panics on parse errors
// since those are build defects, not runtime conditions.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:    logger,
	}
}

// Render writes the named page with statusCode. Render failures after the
// header is written can only be logged.
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, page string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := r.templates.ExecuteTemplate(w, page, data); err != nil {
		r.logger.Error("render page", "page", page, "err", err)
	}
}
