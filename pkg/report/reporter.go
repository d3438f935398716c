package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dskvich/poml-examples/pkg/domain"
)

var separator = strings.Repeat("=", 80)

type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report prints the first choice's content, or the raw body when the shape is unexpected,
// followed by token usage when present.
func (r *Reporter) Report(resp domain.CompletionResponse) error {
	content, err := FirstChoiceContent(resp)
	if err == nil {
		fmt.Fprint(r.out, "GPT Vision API Response:\n\n")
		fmt.Fprintln(r.out, content)
	} else {
		raw, err := json.MarshalIndent(resp.Body, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding raw response: %w", err)
		}
		fmt.Fprintln(r.out, "Unexpected API response format:")
		fmt.Fprintln(r.out, string(raw))
	}

	rawUsage, _ := resp.Get("usage")
	if usage, ok := rawUsage.(map[string]any); ok {
		fmt.Fprintf(r.out, "\n%s\n\n", separator)
		fmt.Fprintln(r.out, "Token usage:")
		fmt.Fprintf(r.out, "- Prompt tokens: %s\n", usageValue(usage, "prompt_tokens"))
		fmt.Fprintf(r.out, "- Completion tokens: %s\n", usageValue(usage, "completion_tokens"))
		fmt.Fprintf(r.out, "- Total tokens: %s\n", usageValue(usage, "total_tokens"))
	}

	return nil
}

// FirstChoiceContent returns choices[0].message.content.
func FirstChoiceContent(resp domain.CompletionResponse) (string, error) {
	v, _ := resp.Get("choices")
	choices, ok := v.([]any)
	if !ok || len(choices) == 0 {
		return "", fmt.Errorf("no choices: %w", domain.ErrUnexpectedResponseShape)
	}

	choice, ok := choices[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("choice is %T: %w", choices[0], domain.ErrUnexpectedResponseShape)
	}

	message, ok := choice["message"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("message is %T: %w", choice["message"], domain.ErrUnexpectedResponseShape)
	}

	content, ok := message["content"].(string)
	if !ok {
		return "", fmt.Errorf("content is %T: %w", message["content"], domain.ErrUnexpectedResponseShape)
	}

	return content, nil
}

func usageValue(usage map[string]any, key string) string {
	v, ok := usage[key]
	if !ok || v == nil {
		return "n/a"
	}
	return fmt.Sprint(v)
}
