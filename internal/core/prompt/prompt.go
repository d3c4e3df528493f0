package prompt

import (
	"strings"
	"text/template"

	"github.com/otaviofarias/papersynth/internal/core"
)

const summaryTemplate = `Act as an academic researcher. Analyze the following document.

CONTEXT:
- Topic: {{.Topic}}
- Project: {{.Project}}

DOCUMENT CONTENT:
{{.DocText}}

TASK:
1. Start with an ABNT2 citation.
2. Summarize the Problem, Methodology, and Results.
3. Explicitly explain how this paper helps the specific Project mentioned above.
`

const discussionTemplate = `Act as an expert editor. Rewrite this summary into a formal academic
'Discussion' section paragraph in English (or the user's preferred language).

INPUT SUMMARY:
{{.Summary}}
`

// SummarizeInput carries the variables interpolated into the summary
// template. Topic and Project are free-form user context; DocText is the
// extracted document text and must be non-empty.
type SummarizeInput struct {
	Topic   string
	Project string
	DocText string
}

// Builder renders the fixed prompt templates. It is pure: same input,
// same prompt, no side effects.
type Builder struct {
	summary    *template.Template
	discussion *template.Template
}

func NewBuilder() *Builder {
	return &Builder{
		summary:    template.Must(template.New("summary").Parse(summaryTemplate)),
		discussion: template.Must(template.New("discussion").Parse(discussionTemplate)),
	}
}

// Summarize builds the analytical-summary prompt. Empty document text is
// rejected here, before any model call happens.
func (b *Builder) Summarize(in SummarizeInput) (string, error) {
	if strings.TrimSpace(in.DocText) == "" {
		return "", core.ErrEmptyText
	}

	var sb strings.Builder
	if err := b.summary.Execute(&sb, in); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Discussion builds the rewrite prompt from a previously generated summary.
func (b *Builder) Discussion(summary string) (string, error) {
	if strings.TrimSpace(summary) == "" {
		return "", core.ErrEmptyText
	}

	var sb strings.Builder
	if err := b.discussion.Execute(&sb, struct{ Summary string }{Summary: summary}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
