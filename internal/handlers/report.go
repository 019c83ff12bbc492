package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"promptstudio/internal/contextutil"
	"promptstudio/internal/service"
)

// ReportHandler serves the style-alignment evaluation report, as plain
// text by default or rendered to HTML for the browser.
type ReportHandler struct {
	sessions service.SessionService
	markdown goldmark.Markdown
	template *template.Template
}

// reportPageData holds template data for the rendered report page.
type reportPageData struct {
	Content template.HTML
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(sessions service.SessionService) *ReportHandler {
	tmpl := template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Evaluation Report</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.6;
    }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
    th { background: #f4f4f4; }
  </style>
</head>
<body>
{{.Content}}
</body>
</html>`))

	return &ReportHandler{
		sessions: sessions,
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
		template: tmpl,
	}
}

// ServeHTTP renders the evaluation report. Query parameters:
// format=html renders the report for the browser; download=1 serves the
// plain-text report as an attachment.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "html") {
		h.serveHTML(w, r)
		return
	}

	text, err := h.sessions.Report(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate report", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="evaluation_report.txt"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// serveHTML renders the markdown report through goldmark into the page
// template.
func (h *ReportHandler) serveHTML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	md, err := h.sessions.ReportMarkdown(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate report", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	var body bytes.Buffer
	if err := h.markdown.Convert([]byte(md), &body); err != nil {
		logger.ErrorContext(ctx, "failed to render report markdown", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := h.template.Execute(w, reportPageData{Content: template.HTML(body.String())}); err != nil {
		logger.ErrorContext(ctx, "failed to execute report template", "error", err)
	}
}
