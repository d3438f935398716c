package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dskvich/poml-examples/pkg/domain"
	"github.com/dskvich/poml-examples/pkg/imagefile"
	"github.com/dskvich/poml-examples/pkg/poml"
	"github.com/dskvich/poml-examples/pkg/prompt"
)

type VisionDescriber interface {
	Describe(ctx context.Context, prompt string, image imagefile.Encoded) (domain.CompletionResponse, error)
}

type ResponseReporter interface {
	Report(resp domain.CompletionResponse) error
}

type visionService struct {
	describer VisionDescriber
	reporter  ResponseReporter
	baseDir   string
	out       io.Writer
}

// NewVisionService wires the pipeline. Relative image paths are resolved against baseDir.
func NewVisionService(
	describer VisionDescriber,
	reporter ResponseReporter,
	baseDir string,
	out io.Writer,
) *visionService {
	return &visionService{
		describer: describer,
		reporter:  reporter,
		baseDir:   baseDir,
		out:       out,
	}
}

// AnalyzeFile runs the POML file at pomlPath through the vision API and reports the answer.
func (s *visionService) AnalyzeFile(ctx context.Context, pomlPath string) error {
	slog.InfoContext(ctx, "Parsing POML file", "path", pomlPath)

	info, err := poml.ParseFile(pomlPath)
	if err != nil {
		return fmt.Errorf("parsing POML file: %w", err)
	}

	slog.InfoContext(ctx, "Found image reference", "src", info.Src)

	imagePath := s.resolve(info.Src)
	slog.InfoContext(ctx, "Loading image", "path", imagePath)

	image, err := imagefile.Encode(imagePath)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Image loaded and converted to base64", "mimeType", image.MIMEType, "size", len(image.Data))

	text := prompt.ImageAnalysis(info)

	separator := strings.Repeat("=", 80)
	fmt.Fprintf(s.out, "Generated prompt for GPT Vision API:\n\n%s\n\n%s\n\n", text, separator)

	slog.InfoContext(ctx, "Sending request to GPT Vision API")

	resp, err := s.describer.Describe(ctx, text, image)
	if err != nil {
		return err
	}

	if err := s.reporter.Report(resp); err != nil {
		return fmt.Errorf("reporting response: %w", err)
	}

	return nil
}

func (s *visionService) resolve(src string) string {
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(src))
}
