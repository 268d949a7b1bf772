// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error *errors.StandardError `json:"error"`
}

func (s *Server) createAnalysis(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		s.respondError(w, errors.NewInvalidAnalysisRequestError("failed to read request body"))
		return
	}
	if len(body) > maxRequestBody {
		s.respondError(w, errors.NewInvalidAnalysisRequestError("request body exceeds limit"))
		return
	}
	if err := validateAnalysisRequest(body); err != nil {
		s.respondError(w, errors.NewInvalidAnalysisRequestError(err.Error()))
		return
	}

	var req models.AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, errors.NewInvalidAnalysisRequestError(err.Error()))
		return
	}

	result, err := s.analyzer.AnalyzeStartup(r.Context(), &req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, result)
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result, err := s.analyzer.GetAnalysis(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	status, err := s.analyzer.GetStatus(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, status)
}

// uploadDocument stores one multipart "file" and returns the document handle
// to reference in an analysis request.
func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if s.uploader == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "document storage is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.respondError(w, errors.NewInvalidAnalysisRequestError("invalid multipart form or file exceeds 10MB"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, errors.NewInvalidAnalysisRequestError("no file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, errors.NewInvalidAnalysisRequestError("failed to read file"))
		return
	}
	if len(data) == 0 {
		s.respondError(w, errors.NewInvalidAnalysisRequestError("uploaded file is empty"))
		return
	}

	doc := models.Document{
		Name:        header.Filename,
		ContentType: contentTypeFor(header.Filename, header.Header.Get("Content-Type")),
		StorageKey:  s.newKey(header.Filename),
	}
	if err := s.uploader.Upload(r.Context(), doc.StorageKey, data, doc.ContentType); err != nil {
		s.respondError(w, errors.NewStoreWriteFailedError(doc.StorageKey, err))
		return
	}

	s.logger.Info("document uploaded", map[string]interface{}{
		"document":   doc.Name,
		"storageKey": doc.StorageKey,
		"bytes":      len(data),
	})
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	stdErr := errors.AsStandardError(err)
	status := errors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"error":     err.Error(),
		})
	}
	s.respondJSON(w, status, errorResponse{Error: stdErr})
}

func documentKey(name string) string {
	return fmt.Sprintf("documents/%s/%s", uuid.NewString(), filepath.Base(name))
}

func contentTypeFor(name, header string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt", ".md":
		return "text/plain"
	}
	if header != "" {
		return header
	}
	return "application/octet-stream"
}
