package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DocumentExtractor defines the interface for extracting text from various
// document types.
type DocumentExtractor interface {
	// ExtractText parses the document bytes and streams the extracted text
	// as trimmed line fragments. The producer runs inside the errgroup, so
	// parse failures surface from g.Wait. The `contentType` hint selects
	// the parsing strategy.
	ExtractText(ctx context.Context, g *errgroup.Group, data []byte, contentType string) (<-chan string, error)
}
