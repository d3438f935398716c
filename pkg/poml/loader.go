package poml

import (
	"fmt"
	"io"
	"os"

	"github.com/dskvich/poml-examples/pkg/domain"
)

// LoadFile reads the whole POML document at path.
func LoadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening POML file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading POML file: %w", err)
	}

	return string(content), nil
}

// ParseFile loads path and extracts its image tag.
func ParseFile(path string) (domain.ImageTagInfo, error) {
	content, err := LoadFile(path)
	if err != nil {
		return domain.ImageTagInfo{}, err
	}

	info, err := ExtractImageTag(content)
	if err != nil {
		return domain.ImageTagInfo{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return info, nil
}
