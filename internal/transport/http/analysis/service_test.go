package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainauth "aquasight-server-go/internal/domain/auth"
	domainimage "aquasight-server-go/internal/domain/image"
	"aquasight-server-go/internal/domain/water"
	"aquasight-server-go/internal/platform/config"
	httptransport "aquasight-server-go/internal/transport/http"
	"aquasight-server-go/internal/utils"
)

func testLogger(t *testing.T) *utils.Logger {
	t.Helper()

	logger, err := utils.NewLogger(&utils.LogCfg{
		LogLevel: "error",
		LogDir:   t.TempDir(),
		LogFile:  "test.log",
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	pipeline, err := domainimage.NewPipeline(domainimage.Options{Analysis: &cfg.Analysis})
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	analyzer, err := water.NewAnalyzer(water.AnalyzerOptions{Pipeline: pipeline})
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	logger := testLogger(t)
	service, err := NewService(cfg, logger, analyzer)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	engine := gin.New()
	api := engine.Group("/api")
	secured := api
	if cfg.Server.Auth.Enabled {
		secured = api.Group("")
		secured.Use(httptransport.BearerAuth(domainauth.NewAuthToken(cfg.Server.Token), logger))
	}
	if err := service.Register(context.Background(), api, secured); err != nil {
		t.Fatalf("failed to register routes: %v", err)
	}
	return service, engine
}

func whitePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestService_PostAnalysis(t *testing.T) {
	_, engine := newTestService(t, nil)

	body, contentType := multipartUpload(t, "file", "sample.png", whitePNG(t))
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var result water.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.OverallQuality != water.QualityFair {
		t.Errorf("overallQuality = %s, want %s", result.OverallQuality, water.QualityFair)
	}
	if result.Metrics.Temperature != 40 {
		t.Errorf("temperature = %f, want 40", result.Metrics.Temperature)
	}
	if len(result.Recommendations) == 0 {
		t.Error("expected recommendations in response")
	}
}

func TestService_PostAnalysisMissingFile(t *testing.T) {
	_, engine := newTestService(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	assertErrorBody(t, rec.Body.Bytes())
}

func TestService_PostAnalysisUndecodableFile(t *testing.T) {
	_, engine := newTestService(t, nil)

	body, contentType := multipartUpload(t, "file", "sample.png", []byte("not an image at all"))
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500; body: %s", rec.Code, rec.Body.String())
	}
	assertErrorBody(t, rec.Body.Bytes())
}

func TestService_PostAnalysisEmptyFile(t *testing.T) {
	_, engine := newTestService(t, nil)

	body, contentType := multipartUpload(t, "file", "sample.png", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	assertErrorBody(t, rec.Body.Bytes())
}

func TestService_PostAnalysisDeterministic(t *testing.T) {
	_, engine := newTestService(t, nil)
	raw := whitePNG(t)

	run := func() water.AnalysisResult {
		body, contentType := multipartUpload(t, "file", "sample.png", raw)
		req := httptest.NewRequest(http.MethodPost, "/api/analysis", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result water.AnalysisResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return result
	}

	first, second := run(), run()
	if first.Metrics != second.Metrics || first.OverallQuality != second.OverallQuality ||
		first.SafetyStatus != second.SafetyStatus {
		t.Errorf("analysis not deterministic: %+v vs %+v", first, second)
	}
}

func TestService_AuthEnabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Auth.Enabled = true
	cfg.Server.Token = "test-secret"

	_, engine := newTestService(t, cfg)
	raw := whitePNG(t)

	post := func(authorization string) *httptest.ResponseRecorder {
		body, contentType := multipartUpload(t, "file", "sample.png", raw)
		req := httptest.NewRequest(http.MethodPost, "/api/analysis", body)
		req.Header.Set("Content-Type", contentType)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	if rec := post(""); rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", rec.Code)
	}
	if rec := post("Bearer garbage"); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}

	token, err := domainauth.NewAuthToken("test-secret").GenerateToken("client-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if rec := post("Bearer " + token); rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}

func TestService_GetAnalysisStatus(t *testing.T) {
	_, engine := newTestService(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !envelope.Success {
		t.Error("expected success envelope")
	}
}

func assertErrorBody(t *testing.T, raw []byte) {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Error == "" {
		t.Errorf("expected non-empty error message, got %s", raw)
	}
}
