package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CompletionResponse is the raw JSON value returned by the completion API.
// Body is usually an object but may be any JSON value, including null.
type CompletionResponse struct {
	Body any
}

// Get returns the top-level key of an object body.
func (r CompletionResponse) Get(key string) (any, bool) {
	obj, ok := r.Body.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// ParseCompletionResponse decodes body keeping numbers as json.Number.
// Only input that is not valid JSON is an error.
func ParseCompletionResponse(body []byte) (CompletionResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return CompletionResponse{}, fmt.Errorf("decoding response data: %w", err)
	}

	return CompletionResponse{Body: v}, nil
}
