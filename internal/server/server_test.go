package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
	"startup-analyst/internal/orchestrator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) AnalyzeStartup(ctx context.Context, req *models.AnalysisRequest) (*models.StoredAnalysis, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.StoredAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyzer) GetAnalysis(ctx context.Context, id string) (*models.StoredAnalysis, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.StoredAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyzer) GetStatus(ctx context.Context) (orchestrator.Status, error) {
	args := m.Called(ctx)
	return args.Get(0).(orchestrator.Status), args.Error(1)
}

type fakeUploader struct {
	key         string
	data        []byte
	contentType string
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, key string, data []byte, contentType string) error {
	f.key, f.data, f.contentType = key, data, contentType
	return f.err
}

func newTestServer(t *testing.T, analyzer Analyzer, uploader Uploader) *Server {
	s := New(config.ServerConfig{Address: ":0"}, analyzer, uploader, logger.NewTestLogger(t))
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	s.newKey = func(name string) string { return "documents/fixed/" + name }
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errors.ErrorCode {
	var body struct {
		Error struct {
			Code errors.ErrorCode `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

// ==========================
// Analysis Endpoint Tests
// ==========================

func TestCreateAnalysis_Success(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("AnalyzeStartup", mock.Anything, mock.MatchedBy(func(req *models.AnalysisRequest) bool {
		return req.CompanyName == "Uber" && len(req.Documents) == 1 &&
			string(req.Documents[0].Content) == "deck" && req.VoiceData.Duration == 90
	})).Return(&models.StoredAnalysis{ID: "analysis_1", Scores: models.Scores{Overall: 90}}, nil)

	body := `{"companyName":"Uber","documents":[{"name":"deck.txt","content":"ZGVjaw=="}],"voiceData":{"duration":90}}`
	rec := serve(newTestServer(t, analyzer, nil), httptest.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got models.StoredAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "analysis_1", got.ID)
	assert.Equal(t, 90, got.Scores.Overall)
	analyzer.AssertExpectations(t)
}

func TestCreateAnalysis_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"documents":`},
		{"unknown field", `{"company":"Uber"}`},
		{"document without name", `{"documents":[{"contentType":"text/plain"}]}`},
		{"empty document name", `{"documents":[{"name":""}]}`},
		{"negative voice duration", `{"voiceData":{"duration":-5}}`},
		{"documents not an array", `{"documents":"deck.pdf"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			rec := serve(newTestServer(t, analyzer, nil),
				httptest.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, errors.ErrCodeInvalidAnalysisRequest, decodeError(t, rec))
			analyzer.AssertNotCalled(t, "AnalyzeStartup", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateAnalysis_PipelineErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   errors.ErrorCode
	}{
		{"agent timeout", errors.NewAgentTimeoutError("voiceExtractor", context.DeadlineExceeded), http.StatusGatewayTimeout, errors.ErrCodeAgentTimeout},
		{"missing agent", errors.NewAgentNotFoundError("memoGenerator"), http.StatusServiceUnavailable, errors.ErrCodeAgentNotFound},
		{"phase failure", errors.NewPhaseError(errors.ErrCodeAnalysisFailed, "marketAnalyst", stderrors.New("boom")), http.StatusInternalServerError, errors.ErrCodeAnalysisFailed},
		{"plain error", stderrors.New("unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			analyzer.On("AnalyzeStartup", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(newTestServer(t, analyzer, nil),
				httptest.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBufferString(`{}`)))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec))
		})
	}
}

func TestGetAnalysis(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("GetAnalysis", mock.Anything, "analysis_1").Return(&models.StoredAnalysis{ID: "analysis_1"}, nil)
	analyzer.On("GetAnalysis", mock.Anything, "missing").Return(nil, errors.NewAnalysisNotFoundError("missing"))
	s := newTestServer(t, analyzer, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/analysis_1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"analysis_1"`)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeAnalysisNotFound, decodeError(t, rec))
}

func TestStatus(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("GetStatus", mock.Anything).Return(orchestrator.Status{
		IsProcessing:      true,
		ActiveAnalyses:    2,
		RegisteredAgents:  []string{"founderAnalyst"},
		CompletedAnalyses: 7,
	}, nil)

	rec := serve(newTestServer(t, analyzer, nil), httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isProcessing":true,"activeAnalyses":2,"registeredAgents":["founderAnalyst"],"completedAnalyses":7}`, rec.Body.String())
}

// ==========================
// Document Upload Tests
// ==========================

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	uploader := &fakeUploader{}
	body, contentType := multipartBody(t, "deck.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(newTestServer(t, &mockAnalyzer{}, uploader), req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, models.Document{Name: "deck.pdf", ContentType: "application/pdf", StorageKey: "documents/fixed/deck.pdf"}, doc)
	assert.Equal(t, "documents/fixed/deck.pdf", uploader.key)
	assert.Equal(t, []byte("%PDF-1.4"), uploader.data)
}

func TestUploadDocument_Failures(t *testing.T) {
	t.Run("storage not configured", func(t *testing.T) {
		body, contentType := multipartBody(t, "deck.pdf", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
		req.Header.Set("Content-Type", contentType)

		rec := serve(newTestServer(t, &mockAnalyzer{}, nil), req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("empty file", func(t *testing.T) {
		body, contentType := multipartBody(t, "deck.pdf", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
		req.Header.Set("Content-Type", contentType)

		rec := serve(newTestServer(t, &mockAnalyzer{}, &fakeUploader{}), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload error", func(t *testing.T) {
		body, contentType := multipartBody(t, "deck.pdf", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
		req.Header.Set("Content-Type", contentType)

		rec := serve(newTestServer(t, &mockAnalyzer{}, &fakeUploader{err: stderrors.New("bucket missing")}), req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, errors.ErrCodeStoreWriteFailed, decodeError(t, rec))
	})
}

// ==========================
// Probe Tests
// ==========================

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, &mockAnalyzer{}, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","time":"2026-01-02T03:04:05Z"}`, rec.Body.String())

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	s.AddReadinessCheck("redis", func(context.Context) error { return stderrors.New("connection refused") })
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(t, &mockAnalyzer{}, nil), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
