package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dskvich/poml-examples/pkg/domain"
)

func parse(t *testing.T, body string) domain.CompletionResponse {
	t.Helper()
	resp, err := domain.ParseCompletionResponse([]byte(body))
	if err != nil {
		t.Fatalf("ParseCompletionResponse(%s) error = %v", body, err)
	}
	return resp
}

func TestReportContentAndUsage(t *testing.T) {
	resp := parse(t, `{"choices":[{"message":{"content":"Hello"}}], "usage":{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}}`)

	var out bytes.Buffer
	if err := NewReporter(&out).Report(resp); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"GPT Vision API Response:",
		"Hello",
		"- Prompt tokens: 1\n",
		"- Completion tokens: 2\n",
		"- Total tokens: 3\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Unexpected API response format") {
		t.Errorf("well-formed response reported as unexpected:\n%s", got)
	}
}

func TestReportFallsBackToRawJSON(t *testing.T) {
	resp := parse(t, `{"error":"bad request"}`)

	var out bytes.Buffer
	if err := NewReporter(&out).Report(resp); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Unexpected API response format:") {
		t.Errorf("missing fallback label:\n%s", got)
	}
	if !strings.Contains(got, `"error": "bad request"`) {
		t.Errorf("missing pretty-printed body:\n%s", got)
	}
	if strings.Contains(got, "Token usage") {
		t.Errorf("usage printed without usage key:\n%s", got)
	}
}

func TestReportDumpsNonObjectBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"array", `[{"error":"bad request"}]`, `"error": "bad request"`},
		{"null", `null`, "null"},
		{"string", `"overloaded"`, `"overloaded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := NewReporter(&out).Report(parse(t, tt.body)); err != nil {
				t.Fatalf("Report() error = %v", err)
			}

			got := out.String()
			if !strings.Contains(got, "Unexpected API response format:") {
				t.Errorf("missing fallback label:\n%s", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestReportUsageWithoutChoices(t *testing.T) {
	resp := parse(t, `{"choices":[],"usage":{"prompt_tokens":10}}`)

	var out bytes.Buffer
	if err := NewReporter(&out).Report(resp); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Unexpected API response format:", "- Prompt tokens: 10", "- Total tokens: n/a"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestFirstChoiceContent(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"content", `{"choices":[{"message":{"content":"Hi"}},{"message":{"content":"second"}}]}`, "Hi", false},
		{"no choices key", `{"id":"x"}`, "", true},
		{"empty choices", `{"choices":[]}`, "", true},
		{"choices not a list", `{"choices":"oops"}`, "", true},
		{"missing message", `{"choices":[{"index":0}]}`, "", true},
		{"null content", `{"choices":[{"message":{"content":null}}]}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FirstChoiceContent(parse(t, tt.body))
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnexpectedResponseShape) {
					t.Errorf("error = %v, want ErrUnexpectedResponseShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
