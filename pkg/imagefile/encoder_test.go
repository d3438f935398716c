package imagefile

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dskvich/poml-examples/pkg/domain"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0}
)

func writeImage(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeKnownBytes(t *testing.T) {
	raw := []byte{0x00, 0x01, 0x02}
	path := writeImage(t, "tiny.bin", raw)

	got, err := Encode(path)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got.Data != "AAEC" {
		t.Errorf("Data = %q, want AAEC", got.Data)
	}

	decoded, err := base64.StdEncoding.DecodeString(got.Data)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Errorf("round trip = %v, want %v", decoded, raw)
	}

	if got.MIMEType != DefaultMIMEType {
		t.Errorf("MIMEType = %q, want %q", got.MIMEType, DefaultMIMEType)
	}
	if uri := got.DataURI(); uri != "data:image/png;base64,AAEC" {
		t.Errorf("DataURI() = %q", uri)
	}
}

func TestEncodeMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.png")

	_, err := Encode(path)

	var readErr *domain.ImageReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Encode() error = %v, want ImageReadError", err)
	}
	if readErr.Path != path {
		t.Errorf("Path = %q, want %q", readErr.Path, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause %v should be os.ErrNotExist", readErr.Err)
	}
}

func TestEncodeDirectory(t *testing.T) {
	_, err := Encode(t.TempDir())

	var readErr *domain.ImageReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Encode(dir) error = %v, want ImageReadError", err)
	}
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name string
		path string
		raw  []byte
		want string
	}{
		{"png signature", "diagram.bin", pngHeader, "image/png"},
		{"jpeg signature under png name", "photo.png", jpegHeader, "image/jpeg"},
		{"unknown bytes with jpeg extension", "photo.JPG", []byte("not really"), "image/jpeg"},
		{"unknown bytes with gif extension", "anim.gif", []byte{1, 2, 3}, "image/gif"},
		{"unknown bytes and extension", "blob.bin", []byte{0, 1, 2}, DefaultMIMEType},
		{"text file", "notes.txt", []byte("hello"), DefaultMIMEType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMIMEType(tt.path, tt.raw); got != tt.want {
				t.Errorf("DetectMIMEType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
