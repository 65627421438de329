package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"golang-statement-analyzer/internal/analyzer"
	"golang-statement-analyzer/internal/parsers"
	"golang-statement-analyzer/internal/reporter"
	apperrors "golang-statement-analyzer/pkg/errors"
	"golang-statement-analyzer/pkg/logger"
)

const (
	uploadFormFile     = "file"
	uploadFormMappings = "columnMappings"
	defaultTopCount    = 3
)

// uploadResponse is the body returned by a successful upload
type uploadResponse struct {
	FileName string `json:"fileName"`
}

// messageResponse carries a human-readable message body
type messageResponse struct {
	Message string `json:"message"`
}

// handleUpload receives a multipart statement upload, stores it under a
// UUID-prefixed name, and rewrites its header line when the request carries
// a column mapping
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.logger.WithError(err).Warn("Failed to parse multipart upload")
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid multipart request"})
		return
	}

	file, header, err := r.FormFile(uploadFormFile)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "missing file field"})
		return
	}
	defer file.Close()

	var mapping parsers.ColumnMapping
	if raw := r.FormValue(uploadFormMappings); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid column mapping"})
			return
		}
	}

	storedName := uuid.New().String() + "-" + filepath.Base(header.Filename)
	storedPath := filepath.Join(s.config.UploadDir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		s.logger.WithError(err).WithField("path", storedPath).Error("Failed to create upload file")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to store upload"})
		return
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(storedPath)
		s.logger.WithError(err).WithField("path", storedPath).Error("Failed to write upload file")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to store upload"})
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(storedPath)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to store upload"})
		return
	}

	if len(mapping) > 0 {
		if err := s.service.RemapHeaders(storedPath, mapping); err != nil {
			os.Remove(storedPath)
			s.logger.WithError(err).WithField("path", storedPath).Warn("Header remap failed for upload")
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "failed to remap headers"})
			return
		}
	}

	s.logger.WithFields(logger.Fields{
		"file_name": storedName,
		"original":  header.Filename,
		"size":      header.Size,
	}).Info("Statement uploaded")

	writeJSON(w, http.StatusCreated, uploadResponse{FileName: storedName})
}

func (s *Server) handleExecutionTypeSums(w http.ResponseWriter, r *http.Request) {
	path, ok := s.statementPath(w, r)
	if !ok {
		return
	}

	totals, err := s.service.ExecutionTypesWithAmounts(path)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleTopSpendingCategories(w http.ResponseWriter, r *http.Request) {
	path, ok := s.statementPath(w, r)
	if !ok {
		return
	}

	now := time.Now()
	top := queryInt(r, "top", defaultTopCount)
	month := queryInt(r, "month", int(now.Month()))
	year := queryInt(r, "year", now.Year())

	if month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "month must be between 1 and 12"})
		return
	}

	categories, err := s.service.TopSpendingCategoriesForMonth(path, top, time.Month(month), year)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleMostAmountPerWeekday(w http.ResponseWriter, r *http.Request) {
	path, ok := s.statementPath(w, r)
	if !ok {
		return
	}

	totals, err := s.service.MostAmountSpentPerWeekday(path)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}

	// The aggregation reports an empty list rather than the no-data error;
	// at the HTTP edge both render as the same message.
	if len(totals) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: reporter.NoDataMessage})
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleHighestSpendingDay(w http.ResponseWriter, r *http.Request) {
	path, ok := s.statementPath(w, r)
	if !ok {
		return
	}

	day, err := s.service.HighestSpendingDay(path)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, day)
}

// statementPath resolves the fileName path segment to a file inside the
// upload directory. Path separators are stripped so requests cannot escape
// the directory.
func (s *Server) statementPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	fileName := filepath.Base(strings.TrimSpace(r.PathValue("fileName")))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "missing file name"})
		return "", false
	}

	path := filepath.Join(s.config.UploadDir, fileName)
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "file not found: " + fileName})
		return "", false
	}

	return path, true
}

// respondQueryError translates service errors into HTTP responses. The
// no-data sentinel is a successful response carrying a message, matching
// the contract the CLI renders through the reporter.
func (s *Server) respondQueryError(w http.ResponseWriter, err error) {
	if errors.Is(err, analyzer.ErrNoData) {
		writeJSON(w, http.StatusOK, messageResponse{Message: reporter.NoDataMessage})
		return
	}

	if appErr, ok := apperrors.AsAnalyzerError(err); ok {
		switch appErr.Code {
		case apperrors.CodeFileNotFound:
			writeJSON(w, http.StatusNotFound, messageResponse{Message: appErr.Message})
			return
		case apperrors.CodeFilePermission:
			writeJSON(w, http.StatusForbidden, messageResponse{Message: appErr.Message})
			return
		}
	}

	s.logger.WithError(err).Error("Query failed")
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed
func queryInt(r *http.Request, name string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
