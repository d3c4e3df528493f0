package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/otaviofarias/papersynth/internal/core"
	"github.com/otaviofarias/papersynth/internal/core/extract"
	"github.com/otaviofarias/papersynth/internal/models"
)

// IngestService runs the ingestion stage: validate the upload, delegate
// parsing to the extractor, and assemble the streamed fragments into one
// plain-text document. No retries; extraction errors surface as-is.
type IngestService struct {
	extractor core.DocumentExtractor
	log       *zap.Logger
}

func NewIngestService(extractor core.DocumentExtractor, log *zap.Logger) *IngestService {
	return &IngestService{extractor: extractor, log: log}
}

// Extract converts the uploaded bytes into plain text. The returned
// Document carries only metadata; the raw bytes are not retained.
func (s *IngestService) Extract(ctx context.Context, filename string, data []byte) (*models.Document, string, error) {
	contentType, ok := extract.ContentTypeFor(filename)
	if !ok {
		return nil, "", &core.ExtractionError{Reason: fmt.Sprintf("unsupported file type %q", filename)}
	}
	if len(data) == 0 {
		return nil, "", &core.ExtractionError{Reason: "empty upload"}
	}

	g, gctx := errgroup.WithContext(ctx)

	fragCh, err := s.extractor.ExtractText(gctx, g, data, contentType)
	if err != nil {
		return nil, "", &core.ExtractionError{Reason: "extractor setup", Err: err}
	}

	var sb strings.Builder
	for frag := range fragCh {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(frag)
	}

	if err := g.Wait(); err != nil {
		s.log.Warn("extraction failed",
			zap.String("file", filename),
			zap.String("content_type", contentType),
			zap.Error(err))
		if _, ok := err.(*core.ExtractionError); ok {
			return nil, "", err
		}
		return nil, "", &core.ExtractionError{Reason: "unreadable document", Err: err}
	}

	text := sb.String()
	if text == "" {
		return nil, "", &core.ExtractionError{Reason: "document contains no extractable text"}
	}

	doc := &models.Document{
		ID:          uuid.NewString(),
		FileName:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		UploadedAt:  time.Now(),
	}

	s.log.Info("document extracted",
		zap.String("doc_id", doc.ID),
		zap.String("file", filename),
		zap.Int64("size_bytes", doc.SizeBytes),
		zap.Int("text_chars", len(text)))

	return doc, text, nil
}
