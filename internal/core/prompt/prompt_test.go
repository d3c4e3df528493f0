package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/otaviofarias/papersynth/internal/core"
)

func TestSummarizeRejectsEmptyText(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		name    string
		docText string
	}{
		{name: "empty string", docText: ""},
		{name: "whitespace only", docText: "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Summarize(SummarizeInput{Topic: "t", Project: "p", DocText: tt.docText})
			if !errors.Is(err, core.ErrEmptyText) {
				t.Errorf("err = %v, want ErrEmptyText", err)
			}
		})
	}
}

func TestSummarizeInterpolation(t *testing.T) {
	b := NewBuilder()

	out, err := b.Summarize(SummarizeInput{
		Topic:   "anti-inflammatory compounds",
		Project: "a systematic review",
		DocText: "paper body goes here",
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	for _, want := range []string{
		"Topic: anti-inflammatory compounds",
		"Project: a systematic review",
		"paper body goes here",
		"ABNT2 citation",
		"Problem, Methodology, and Results",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	b := NewBuilder()
	in := SummarizeInput{Topic: "x", Project: "y", DocText: "z"}

	first, err := b.Summarize(in)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := b.Summarize(in)
		if err != nil {
			t.Fatalf("Summarize: %v", err)
		}
		if again != first {
			t.Fatalf("prompt differs between runs:\n%q\nvs\n%q", first, again)
		}
	}
}

func TestDiscussion(t *testing.T) {
	b := NewBuilder()

	if _, err := b.Discussion("  "); !errors.Is(err, core.ErrEmptyText) {
		t.Errorf("empty summary: err = %v, want ErrEmptyText", err)
	}

	out, err := b.Discussion("the summary text")
	if err != nil {
		t.Fatalf("Discussion: %v", err)
	}
	if !strings.Contains(out, "the summary text") {
		t.Errorf("prompt missing input summary")
	}
	if !strings.Contains(out, "'Discussion' section") {
		t.Errorf("prompt missing rewrite instruction")
	}
}
