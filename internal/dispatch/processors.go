package dispatch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gridhook-systems/gridhook/internal/logging"
	"github.com/gridhook-systems/gridhook/internal/models"
)

// DefaultProcessors returns the standard processor chain: image, text and
// JSON processors first, with the generic catch-all last.
func DefaultProcessors(logger *logging.Logger) []Processor {
	return []Processor{
		&ImageProcessor{logger: logger},
		&TextProcessor{logger: logger},
		&JSONProcessor{logger: logger},
		&GenericProcessor{logger: logger},
	}
}

// ImageProcessor handles image/* blobs. Stub: real image handling
// (thumbnails, EXIF extraction) plugs in here.
type ImageProcessor struct {
	logger *logging.Logger
}

func (p *ImageProcessor) Name() string { return "image" }

func (p *ImageProcessor) Supports(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func (p *ImageProcessor) Process(ctx context.Context, info models.BlobInfo, env models.Envelope) error {
	p.logger.InfoContext(ctx, "processing image blob",
		logging.Blob(info.BlobName),
		logging.Container(info.ContainerName),
		logging.ContentType(info.ContentType),
		slog.Int64("content_length", info.ContentLength),
	)
	return nil
}

// TextProcessor handles text/* blobs. Stub: parsing and search indexing
// plug in here.
type TextProcessor struct {
	logger *logging.Logger
}

func (p *TextProcessor) Name() string { return "text" }

func (p *TextProcessor) Supports(contentType string) bool {
	return strings.HasPrefix(contentType, "text/")
}

func (p *TextProcessor) Process(ctx context.Context, info models.BlobInfo, env models.Envelope) error {
	p.logger.InfoContext(ctx, "processing text blob",
		logging.Blob(info.BlobName),
		logging.Container(info.ContainerName),
		logging.ContentType(info.ContentType),
	)
	return nil
}

// JSONProcessor handles blobs with content type exactly application/json.
// Stub: schema validation and transformation plug in here.
type JSONProcessor struct {
	logger *logging.Logger
}

func (p *JSONProcessor) Name() string { return "json" }

func (p *JSONProcessor) Supports(contentType string) bool {
	return contentType == "application/json"
}

func (p *JSONProcessor) Process(ctx context.Context, info models.BlobInfo, env models.Envelope) error {
	p.logger.InfoContext(ctx, "processing JSON blob",
		logging.Blob(info.BlobName),
		logging.Container(info.ContainerName),
	)
	return nil
}

// GenericProcessor is the catch-all for content types no other processor
// claims, including an empty content type.
type GenericProcessor struct {
	logger *logging.Logger
}

func (p *GenericProcessor) Name() string { return "generic" }

func (p *GenericProcessor) Supports(contentType string) bool {
	return true
}

func (p *GenericProcessor) Process(ctx context.Context, info models.BlobInfo, env models.Envelope) error {
	p.logger.InfoContext(ctx, "processing blob",
		logging.Blob(info.BlobName),
		logging.Container(info.ContainerName),
		logging.ContentType(info.ContentType),
	)
	return nil
}
