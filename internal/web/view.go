package web

// view.go renders a cleaned dataset as an HTML table for quick visual
// inspection in a browser.

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salespipe/internal/logging"
)

var viewTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Processed CSV Viewer</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ccc; padding: 0.4rem 0.7rem; text-align: left; }
    th { background: #f4f4f4; }
    tr:nth-child(even) { background: #fafafa; }
    .meta { color: #666; margin-bottom: 1rem; }
  </style>
</head>
<body>
  <h1>Processed CSV Viewer</h1>
  <p class="meta">Process ID: {{.ProcessID}} &middot; {{len .Records}} rows</p>
  <table>
    <thead>
      <tr>
        <th>product_id</th><th>product_name</th><th>category</th>
        <th>price</th><th>quantity_sold</th><th>rating</th><th>review_count</th>
      </tr>
    </thead>
    <tbody>
      {{range .Records}}
      <tr>
        <td>{{.ProductID}}</td>
        <td>{{.ProductName}}</td>
        <td>{{.Category}}</td>
        <td>{{.Price}}</td>
        <td>{{.QuantitySold}}</td>
        <td>{{.Rating}}</td>
        <td>{{if .ReviewCount}}{{.ReviewCount}}{{end}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>`))

func (s *Server) handleViewCleaned(w http.ResponseWriter, r *http.Request) {
	processID := chi.URLParam(r, "processID")

	ds, err := s.service.Cleaned(r.Context(), processID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viewTemplate.Execute(w, ds); err != nil {
		// Headers are already sent; log only.
		logging.FromContext(r.Context()).Error("render view", "error", err)
	}
}
