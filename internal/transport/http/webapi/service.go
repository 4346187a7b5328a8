package webapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"aquasight-server-go/internal/domain/stats"
	"aquasight-server-go/internal/platform/config"
	"aquasight-server-go/internal/platform/errors"
	httptransport "aquasight-server-go/internal/transport/http"
	"aquasight-server-go/internal/utils"
)

// Service exposes the operational endpoints: health probe with runtime
// stats and the config echo used by the web UI.
type Service struct {
	logger    *utils.Logger
	config    *config.Config
	collector *stats.Collector
	startedAt time.Time
}

func NewService(cfg *config.Config, logger *utils.Logger, collector *stats.Collector) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "logger is required")
	}

	return &Service{
		logger:    logger,
		config:    cfg,
		collector: collector,
		startedAt: time.Now(),
	}, nil
}

// Register mounts the operational routes.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/health", s.handleHealth)
	router.OPTIONS("/health", s.handleOptions)

	s.logger.InfoTag("HTTP", "webapi routes registered")
	return nil
}

func (s *Service) handleOptions(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Service) handleHealth(c *gin.Context) {
	payload := gin.H{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(s.startedAt).Seconds()),
	}

	if s.collector != nil {
		payload["analysis"] = s.collector.Snapshot()
	}

	// System stats are best effort; the probe stays healthy even when the
	// platform calls fail (containers without /proc access, for instance).
	if vm, err := mem.VirtualMemory(); err == nil {
		payload["memory"] = gin.H{
			"totalMB":     vm.Total / 1024 / 1024,
			"usedMB":      vm.Used / 1024 / 1024,
			"usedPercent": vm.UsedPercent,
		}
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		payload["cpuPercent"] = percents[0]
	}

	httptransport.RespondSuccess(c, http.StatusOK, payload, "")
}
