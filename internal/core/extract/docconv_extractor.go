package extract

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"golang.org/x/sync/errgroup"

	"github.com/otaviofarias/papersynth/internal/core"
)

// contentTypes maps the file extensions we accept to the MIME types docconv
// understands. Anything else is rejected before parsing starts.
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".odt":  "application/vnd.oasis.opendocument.text",
	".rtf":  "application/rtf",
	".txt":  "text/plain",
	".md":   "text/plain",
	".html": "text/html",
	".htm":  "text/html",
}

// ContentTypeFor returns the MIME type inferred from the filename and
// whether the format is supported.
func ContentTypeFor(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct, ok := contentTypes[ext]
	return ct, ok
}

var _ core.DocumentExtractor = (*DocconvExtractor)(nil)

// DocconvExtractor delegates document parsing to docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// ExtractText converts the document and streams the extracted text as
// trimmed, non-empty line fragments.
func (e *DocconvExtractor) ExtractText(ctx context.Context, g *errgroup.Group, data []byte, contentType string) (<-chan string, error) {
	out := make(chan string, 32)

	g.Go(func() error {
		defer close(out)

		res, err := docconv.Convert(bytes.NewReader(data), contentType, e.useReadability)
		if err != nil {
			return &core.ExtractionError{Reason: "unreadable document", Err: err}
		}

		lines := strings.Split(res.Body, "\n")
		for _, line := range lines {
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return out, nil
}
