package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential       = errors.New("OPENAI_API_KEY environment variable is not set")
	ErrNoImageFound            = errors.New("no image source found in POML file")
	ErrUnexpectedResponseShape = errors.New("unexpected API response format")
	ErrMissingFile             = errors.New("missing file")
	ErrNotPOML                 = errors.New("may not be a valid POML file (missing <poml> tags)")
)

// ImageReadError reports an image file that could not be opened or read.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("reading image file %s: %v", e.Path, e.Err)
}

func (e *ImageReadError) Unwrap() error { return e.Err }

// RequestError reports a failed call to the completion API.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
