package imagefile

import (
	"encoding/base64"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dskvich/poml-examples/pkg/domain"
)

// DefaultMIMEType labels images whose format cannot be detected.
const DefaultMIMEType = "image/png"

// Encoded is an image file in base64 form.
type Encoded struct {
	Data     string
	MIMEType string
}

// DataURI renders the image as data:<mime>;base64,<data>.
func (e Encoded) DataURI() string {
	return "data:" + e.MIMEType + ";base64," + e.Data
}

// Encode reads the file at path and encodes it with standard base64.
func Encode(path string) (Encoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return Encoded{}, &domain.ImageReadError{Path: path, Err: err}
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return Encoded{}, &domain.ImageReadError{Path: path, Err: err}
	}

	return Encoded{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MIMEType: DetectMIMEType(path, raw),
	}, nil
}

// DetectMIMEType sniffs the byte signature, then falls back to the extension, then to PNG.
func DetectMIMEType(path string, raw []byte) string {
	if detected := mimetype.Detect(raw); isImage(detected.String()) {
		return detected.String()
	}

	if byExt, _, err := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))); err == nil && isImage(byExt) {
		return byExt
	}

	return DefaultMIMEType
}

func isImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
