package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"salespipe/internal/core"
	"salespipe/internal/logging"
	"salespipe/internal/store"
)

// demoRowCount is the number of rows in the generated demo dataset.
const demoRowCount = 50

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"limiter": s.service.LimiterStatus(),
	})
}

// handleUpload accepts a multipart CSV upload, runs the cleaning and
// summary pipeline, and returns the process identifier plus artifact
// names.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, &core.FormatError{Reason: "no file provided", Err: err})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.respondError(w, r, &core.FormatError{Reason: "only CSV files are allowed"})
		return
	}

	logging.WithFields(r.Context(), "file", header.Filename, "size", header.Size).
		Info("upload received")

	result, err := s.service.ProcessCSV(r.Context(), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "CSV file processed successfully",
		"result":  result,
	})
}

func (s *Server) handleDownloadCleaned(w http.ResponseWriter, r *http.Request) {
	processID := chi.URLParam(r, "processID")

	rc, err := s.service.OpenCleaned(r.Context(), processID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer rc.Close()

	serveCSV(w, rc, store.KindCleaned.FileName(processID))
}

func (s *Server) handleDownloadSummary(w http.ResponseWriter, r *http.Request) {
	processID := chi.URLParam(r, "processID")

	rc, err := s.service.OpenSummary(r.Context(), processID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer rc.Close()

	serveCSV(w, rc, store.KindSummary.FileName(processID))
}

// handleIngest pushes the cleaned dataset into the database through the
// sink adapter. All-or-nothing: either every row lands or none do.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	processID := chi.URLParam(r, "processID")

	inserted, err := s.service.PushToDatabase(r.Context(), processID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "cleaned data pushed to database successfully",
		"process_id":    processID,
		"rows_inserted": inserted,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"runs": s.service.Runs()})
}

func (s *Server) handleDemoCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="demo.csv"`)
	if err := core.WriteDemoCSV(w, demoRowCount); err != nil {
		logging.FromContext(r.Context()).Error("demo csv write failed", "error", err)
	}
}

func serveCSV(w http.ResponseWriter, r io.Reader, fileName string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	io.Copy(w, r)
}
