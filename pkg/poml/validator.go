package poml

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/dskvich/poml-examples/pkg/domain"
)

// Manifest lists the files a validation run expects to find.
type Manifest struct {
	POMLFiles []string `yaml:"poml_files"`
	DataFiles []string `yaml:"data_files"`
}

func DefaultManifest() Manifest {
	return Manifest{
		POMLFiles: []string{
			"examples/customer-support.poml",
			"examples/ecommerce-report.poml",
			"examples/image-analysis.poml",
		},
		DataFiles: []string{
			"examples/data/customer_history.json",
			"examples/data/inventory.csv",
			"examples/data/knowledge_base.csv",
			"examples/data/market_trends.txt",
		},
	}
}

func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	return m, nil
}

// Validate checks every manifest entry under root and writes one line per file to w.
// The returned error aggregates all problems found.
func Validate(root string, m Manifest, w io.Writer) error {
	var result error

	fmt.Fprint(w, "Validating POML files...\n\n")
	for _, file := range m.POMLFiles {
		if err := checkPOMLFile(root, file, w); err != nil {
			result = multierror.Append(result, err)
		}
	}

	fmt.Fprint(w, "\nValidating data files...\n\n")
	for _, file := range m.DataFiles {
		if err := checkExists(root, file, w); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result == nil {
		fmt.Fprint(w, "\nAll files are present and valid!\n")
	} else {
		fmt.Fprint(w, "\nSome files are missing or invalid.\n")
	}

	return result
}

func checkExists(root, file string, w io.Writer) error {
	if _, err := os.Stat(filepath.Join(root, file)); err != nil {
		fmt.Fprintf(w, "✗ Missing %s\n", file)
		return fmt.Errorf("%s: %w", file, domain.ErrMissingFile)
	}
	fmt.Fprintf(w, "✓ Found %s\n", file)
	return nil
}

func checkPOMLFile(root, file string, w io.Writer) error {
	if err := checkExists(root, file, w); err != nil {
		return err
	}

	content, err := LoadFile(filepath.Join(root, file))
	if err != nil {
		fmt.Fprintf(w, "✗ %s could not be read\n", file)
		return fmt.Errorf("%s: %w", file, err)
	}

	if !strings.Contains(content, "<poml>") || !strings.Contains(content, "</poml>") {
		fmt.Fprintf(w, "✗ %s %v\n", file, domain.ErrNotPOML)
		return fmt.Errorf("%s: %w", file, domain.ErrNotPOML)
	}

	return nil
}
