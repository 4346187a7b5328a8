package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"

	"aquasight-server-go/internal/platform/config"
	"aquasight-server-go/internal/platform/errors"
	"aquasight-server-go/internal/platform/observability"
	"aquasight-server-go/internal/utils"
)

// Pipeline turns an uploaded image stream into a validated PixelBuffer.
type Pipeline struct {
	validator *Validator
	logger    *utils.Logger
	analysis  *config.AnalysisConfig
}

// Options configures the pipeline behaviour.
type Options struct {
	Analysis *config.AnalysisConfig
	Logger   *utils.Logger
}

// Input describes a streaming image payload.
type Input struct {
	Reader         io.Reader
	DeclaredFormat string
	Source         string
}

// Output contains the decoded raster produced by the pipeline.
type Output struct {
	Buffer     *PixelBuffer
	Format     string
	Validation ValidationResult
}

// NewPipeline constructs an image ingestion pipeline.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Analysis == nil {
		return nil, fmt.Errorf("analysis config is required")
	}
	if opts.Logger == nil {
		opts.Logger = utils.DefaultLogger
	}

	return &Pipeline{
		validator: NewValidator(opts.Analysis, opts.Logger),
		logger:    opts.Logger,
		analysis:  opts.Analysis,
	}, nil
}

// Process streams the input through validation and decoding. The returned
// buffer always satisfies the width*height*4 stride invariant; an alpha
// channel is synthesised when the source image lacks one.
func (p *Pipeline) Process(ctx context.Context, input Input) (*Output, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	_, endSpan := observability.StartSpan(ctx, "image", "process")

	out, err := p.process(input)
	endSpan(err)
	return out, err
}

func (p *Pipeline) process(input Input) (*Output, error) {
	if input.Reader == nil {
		return nil, errors.Wrap(errors.KindDomain, "image.process", "missing upload", ErrInvalidInput)
	}

	maxSize := p.analysis.MaxFileSize
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}

	limited := &io.LimitedReader{
		R: input.Reader,
		N: maxSize + 1,
	}

	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.Wrap(errors.KindDomain, "image.process", "read image bytes", err)
	}
	if limited.N <= 0 {
		return nil, errors.New(errors.KindDomain, "image.process",
			fmt.Sprintf("image exceeds maximum size of %d bytes", maxSize))
	}
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.KindDomain, "image.process", "empty upload", ErrInvalidInput)
	}

	validation := p.validator.ValidateBytes(raw, input.DeclaredFormat)
	if !validation.IsValid {
		if validation.Err != nil {
			return nil, errors.Wrap(errors.KindDomain, "image.process", "payload validation failed", validation.Err)
		}
		return nil, errors.New(errors.KindDomain, "image.process", "payload validation failed")
	}

	buffer, format, err := decodeToBuffer(raw)
	if err != nil {
		return nil, errors.Wrap(errors.KindDomain, "image.process", "decode image", err)
	}

	p.logger.DebugTag(
		"IMAGE",
		"decoded upload: source=%s format=%s width=%d height=%d",
		input.Source,
		format,
		buffer.Width,
		buffer.Height,
	)

	return &Output{
		Buffer:     buffer,
		Format:     format,
		Validation: validation,
	}, nil
}

// decodeToBuffer decodes raw bytes and flattens the result into RGBA order.
// Drawing into a fresh NRGBA canvas normalises every source color model
// (paletted, grayscale, YCbCr) to the fixed 4-byte stride.
func decodeToBuffer(raw []byte) (*PixelBuffer, string, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, "", fmt.Errorf("%w: indeterminate dimensions %dx%d", ErrDecode, width, height)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)

	buffer := &PixelBuffer{
		Pix:    canvas.Pix,
		Width:  width,
		Height: height,
	}
	if err := buffer.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return buffer, format, nil
}
