package analysis

import (
	"context"
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	domainimage "aquasight-server-go/internal/domain/image"
	"aquasight-server-go/internal/domain/water"
	"aquasight-server-go/internal/platform/config"
	"aquasight-server-go/internal/platform/errors"
	httptransport "aquasight-server-go/internal/transport/http"
	"aquasight-server-go/internal/utils"
)

// Service is the HTTP transport for the analysis domain.
type Service struct {
	logger   *utils.Logger
	config   *config.Config
	analyzer *water.Analyzer
}

func NewService(
	cfg *config.Config,
	logger *utils.Logger,
	analyzer *water.Analyzer,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "analysis.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "analysis.new", "logger is required")
	}
	if analyzer == nil {
		return nil, errors.New(errors.KindConfig, "analysis.new", "analyzer is required")
	}

	return &Service{
		logger:   logger,
		config:   cfg,
		analyzer: analyzer,
	}, nil
}

// Register mounts the analysis routes. The upload POST goes on the secured
// group so any auth middleware applies to it; status GET and CORS OPTIONS
// stay open.
func (s *Service) Register(ctx context.Context, api, secured *gin.RouterGroup) error {
	if secured == nil {
		secured = api
	}

	api.GET("/analysis", s.handleGet)
	api.OPTIONS("/analysis", s.handleOptions)
	secured.POST("/analysis", s.handlePost)

	s.logger.InfoTag("HTTP", "analysis routes registered")
	return nil
}

func (s *Service) handleOptions(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Service) handleGet(c *gin.Context) {
	httptransport.RespondSuccess(c, http.StatusOK, gin.H{
		"service":     "analysis",
		"status":      "running",
		"authEnabled": s.config.Server.Auth.Enabled,
	}, "")
}

func (s *Service) handlePost(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.logger.WarnTag("HTTP", "analysis request without image file: %v", err)
		httptransport.RespondError(c, http.StatusBadRequest, "no image file supplied")
		return
	}
	defer file.Close()

	result, err := s.analyzer.Analyze(c.Request.Context(), domainimage.Input{
		Reader:         file,
		DeclaredFormat: detectImageFormatFromFilename(header.Filename),
		Source:         "upload",
	})
	if err != nil {
		status, message := mapAnalysisError(err)
		s.logger.WarnTag("HTTP", "analysis request failed: status=%d error=%v", status, err)
		httptransport.RespondError(c, status, message)
		return
	}

	httptransport.WriteJSON(c, http.StatusOK, result)
}

// mapAnalysisError translates pipeline failures to the caller-facing status
// and message. Missing or empty uploads are client errors; decode and
// processing failures are server errors. Internal detail never leaks.
func mapAnalysisError(err error) (int, string) {
	switch {
	case stderrors.Is(err, domainimage.ErrInvalidInput):
		return http.StatusBadRequest, "no image file supplied or file is empty"
	case stderrors.Is(err, domainimage.ErrDecode):
		return http.StatusInternalServerError, "image could not be decoded"
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}

// detectImageFormatFromFilename derives the declared format from the upload
// filename extension. An empty result skips the format allow-list check and
// leaves detection to the decoder.
func detectImageFormatFromFilename(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ext
}
