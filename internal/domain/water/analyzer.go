package water

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aquasight-server-go/internal/domain/eventbus"
	imgdomain "aquasight-server-go/internal/domain/image"
	"aquasight-server-go/internal/platform/errors"
	"aquasight-server-go/internal/platform/observability"
	"aquasight-server-go/internal/utils"
)

// EventPublisher is the slice of the event bus the analyzer needs.
type EventPublisher interface {
	PublishAsync(topic string, args ...interface{})
}

// CompletedEvent is published on eventbus.TopicAnalysisCompleted.
type CompletedEvent struct {
	ID       string
	Quality  QualityLevel
	Source   string
	Duration time.Duration
}

// FailedEvent is published on eventbus.TopicAnalysisFailed.
type FailedEvent struct {
	Source string
	Err    error
}

// Analyzer drives the full pipeline from raw upload bytes to an
// AnalysisResult. It holds no per-request state, so a single instance
// serves concurrent requests without locking.
type Analyzer struct {
	pipeline *imgdomain.Pipeline
	logger   *utils.Logger
	events   EventPublisher
}

// AnalyzerOptions configures a new Analyzer.
type AnalyzerOptions struct {
	Pipeline *imgdomain.Pipeline
	Logger   *utils.Logger
	Events   EventPublisher
}

func NewAnalyzer(opts AnalyzerOptions) (*Analyzer, error) {
	if opts.Pipeline == nil {
		return nil, errors.New(errors.KindAnalysis, "analyzer.new", "image pipeline is required")
	}
	if opts.Logger == nil {
		opts.Logger = utils.DefaultLogger
	}

	return &Analyzer{
		pipeline: opts.Pipeline,
		logger:   opts.Logger,
		events:   opts.Events,
	}, nil
}

// Analyze decodes the upload and runs the analysis chain. On any failure
// no partial result is returned; the request is all-or-nothing.
func (a *Analyzer) Analyze(ctx context.Context, input imgdomain.Input) (*AnalysisResult, error) {
	start := time.Now()
	_, endSpan := observability.StartSpan(ctx, "water", "analyze")

	decoded, err := a.pipeline.Process(ctx, input)
	if err != nil {
		endSpan(err)
		a.publishFailure(input.Source, err)
		return nil, err
	}

	result, err := a.AnalyzeBuffer(decoded.Buffer)
	if err != nil {
		endSpan(err)
		a.publishFailure(input.Source, err)
		return nil, err
	}
	endSpan(nil)

	duration := time.Since(start)
	a.logger.InfoTag(
		"ANALYSIS",
		"analysis complete: id=%s quality=%s format=%s size=%dx%d duration=%s",
		result.ID,
		result.OverallQuality,
		decoded.Format,
		decoded.Buffer.Width,
		decoded.Buffer.Height,
		duration,
	)

	if a.events != nil {
		a.events.PublishAsync(eventbus.TopicAnalysisCompleted, CompletedEvent{
			ID:       result.ID,
			Quality:  result.OverallQuality,
			Source:   input.Source,
			Duration: duration,
		})
	}

	return result, nil
}

// AnalyzeBuffer runs the statistics, derivation, scoring, safety and
// recommendation stages over an already decoded buffer. The chain is a
// pure function of the buffer apart from the generated ID and timestamp.
func (a *Analyzer) AnalyzeBuffer(buf *imgdomain.PixelBuffer) (*AnalysisResult, error) {
	averages, err := ComputeColorAverages(buf)
	if err != nil {
		return nil, err
	}

	metrics := DeriveMetrics(averages)
	quality := ClassifyQuality(QualityScore(metrics))
	safety := AssessSafety(metrics)
	recommendations := GenerateRecommendations(metrics, safety)

	return &AnalysisResult{
		ID:              uuid.NewString(),
		OverallQuality:  quality,
		Metrics:         metrics,
		SafetyStatus:    safety,
		Recommendations: recommendations,
		AnalyzedAt:      time.Now().UTC(),
	}, nil
}

func (a *Analyzer) publishFailure(source string, err error) {
	a.logger.ErrorTag("ANALYSIS", "analysis failed: source=%s error=%v", source, err)
	if a.events != nil {
		a.events.PublishAsync(eventbus.TopicAnalysisFailed, FailedEvent{
			Source: source,
			Err:    err,
		})
	}
}
