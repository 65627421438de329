package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang-statement-analyzer/internal/reporter"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	config := DefaultConfig()
	config.UploadDir = t.TempDir()

	srv, err := NewServer(config)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return srv
}

// uploadStatement posts a multipart upload and returns the stored file name
func uploadStatement(t *testing.T, srv *Server, fileName, content, mappings string) string {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if mappings != "" {
		if err := writer.WriteField("columnMappings", mappings); err != nil {
			t.Fatalf("Failed to write mappings field: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/finance/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid upload response: %v", err)
	}
	if resp.FileName == "" {
		t.Fatal("Expected a stored file name")
	}
	return resp.FileName
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

const sampleUpload = "date;transaction_type;amount;category\r\n" +
	"2023-05-01;Payment;-60.00;groceries\r\n" +
	"2023-05-02;Payment;-50.00;transport\r\n" +
	"2023-05-08;Payment;-40.00;groceries\r\n" +
	"2023-05-25;Deposit;1500.00;salary\r\n"

func TestHandleUpload(t *testing.T) {
	srv := newTestServer(t)

	name := uploadStatement(t, srv, "statement.csv", sampleUpload, "")

	// Stored name keeps the original base name behind a unique prefix
	if !strings.HasSuffix(name, "-statement.csv") {
		t.Errorf("Expected a prefixed file name, got %q", name)
	}

	if _, err := os.Stat(filepath.Join(srv.config.UploadDir, name)); err != nil {
		t.Errorf("Expected stored file to exist: %v", err)
	}
}

func TestHandleUpload_WithColumnMapping(t *testing.T) {
	srv := newTestServer(t)

	content := "Datum;Mutatiesoort;Bedrag\r\n2023-05-01;Betaling;-10.50\r\n"
	mappings := `{"date":"Datum","transaction_type":"Mutatiesoort","amount":"Bedrag"}`

	name := uploadStatement(t, srv, "dutch.csv", content, mappings)

	data, err := os.ReadFile(filepath.Join(srv.config.UploadDir, name))
	if err != nil {
		t.Fatalf("Failed to read stored file: %v", err)
	}
	if !strings.HasPrefix(string(data), "date;transaction_type;amount\r\n") {
		t.Errorf("Expected remapped header, got %q", string(data))
	}
}

func TestHandleUpload_MissingFileField(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("columnMappings", "{}")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/finance/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleUpload_InvalidMapping(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("file", "statement.csv")
	part.Write([]byte(sampleUpload))
	writer.WriteField("columnMappings", `["not","an","object"]`)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/finance/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleExecutionTypeSums(t *testing.T) {
	srv := newTestServer(t)
	name := uploadStatement(t, srv, "statement.csv", sampleUpload, "")

	rec := get(srv, "/finance/calculate/execution-types-sums/"+name)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var totals []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if len(totals) != 2 {
		t.Errorf("Expected 2 types, got %v", totals)
	}
}

func TestHandleTopSpendingCategories(t *testing.T) {
	srv := newTestServer(t)
	name := uploadStatement(t, srv, "statement.csv", sampleUpload, "")

	rec := get(srv, "/finance/calculate/top-spending-categories/"+name+"?top=2&month=5&year=2023")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var categories []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %v", categories)
	}
	if categories[0]["category"] != "groceries" {
		t.Errorf("Expected groceries first, got %v", categories[0])
	}
}

func TestHandleTopSpendingCategories_InvalidMonth(t *testing.T) {
	srv := newTestServer(t)
	name := uploadStatement(t, srv, "statement.csv", sampleUpload, "")

	rec := get(srv, "/finance/calculate/top-spending-categories/"+name+"?month=13")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleMostAmountPerWeekday(t *testing.T) {
	srv := newTestServer(t)
	name := uploadStatement(t, srv, "statement.csv", sampleUpload, "")

	rec := get(srv, "/finance/calculate/most-amount-per-weekday/"+name)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var totals []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if len(totals) != 3 {
		t.Errorf("Expected 3 weekdays, got %v", totals)
	}
}

func TestHandleMostAmountPerWeekday_NoData(t *testing.T) {
	srv := newTestServer(t)
	name := uploadStatement(t, srv, "statement.csv", "text;currency\r\nno dates;EUR\r\n", "")

	rec := get(srv, "/finance/calculate/most-amount-per-weekday/"+name)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if resp.Message != reporter.NoDataMessage {
		t.Errorf("Expected the no-data message, got %q", resp.Message)
	}
}

func TestHandleHighestSpendingDay(t *testing.T) {
	srv := newTestServer(t)
	name := uploadStatement(t, srv, "statement.csv", sampleUpload, "")

	rec := get(srv, "/finance/calculate/highest-spending-day/"+name)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var day map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if day["weekday"] != "Thursday" {
		t.Errorf("Expected Thursday, got %v", day)
	}
}

func TestHandleHighestSpendingDay_NoData(t *testing.T) {
	srv := newTestServer(t)
	name := uploadStatement(t, srv, "statement.csv", "text;currency\r\nno dates;EUR\r\n", "")

	rec := get(srv, "/finance/calculate/highest-spending-day/"+name)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if resp.Message != reporter.NoDataMessage {
		t.Errorf("Expected the no-data message, got %q", resp.Message)
	}
}

func TestCalculate_FileNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/finance/calculate/execution-types-sums/missing.csv")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ANALYZER_HTTP_ADDR", ":9191")
	t.Setenv("ANALYZER_MAX_UPLOAD_BYTES", "2048")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr != ":9191" {
		t.Errorf("Expected addr :9191, got %q", cfg.Addr)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Errorf("Expected max upload 2048, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadConfig_InvalidSize(t *testing.T) {
	t.Setenv("ANALYZER_MAX_UPLOAD_BYTES", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("Expected error for invalid upload size")
	}
}
