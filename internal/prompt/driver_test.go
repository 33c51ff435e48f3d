package prompt

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); !errors.Is(err, other) {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestNewSurveyDriver_Stdio(t *testing.T) {
	if d := NewSurveyDriver(&bytes.Buffer{}).(*surveyDriver); len(d.opts) != 0 {
		t.Fatalf("expected no stdio override for a buffer, got %d opts", len(d.opts))
	}
	if d := NewSurveyDriver(os.Stderr).(*surveyDriver); len(d.opts) != 1 {
		t.Fatalf("expected stdio override for a file, got %d opts", len(d.opts))
	}
}

func TestSelectionIndices(t *testing.T) {
	options := []string{"BANNER", "SQUARE", "FREE"}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"FREE", "BANNER", "OTHER"})); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"SQUARE"}, defaultsFromIndices(options, []int{1, 7, -1})); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if got := indexOf(options, "missing"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
