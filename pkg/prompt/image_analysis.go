package prompt

import (
	"fmt"

	"github.com/dskvich/poml-examples/pkg/domain"
)

const imageAnalysisTemplate = `You are a technical image analysis expert with expertise in system architecture.

Analyze the provided image and describe the architectural components in detail, including:
1. Architectural style
2. Materials used
3. Identifiable functional elements

Additional context:
- Image description: %s
- Processing type: %s
- Focus areas: %s`

// ImageAnalysis builds the instruction sent alongside the image. Values are embedded verbatim.
func ImageAnalysis(info domain.ImageTagInfo) string {
	return fmt.Sprintf(imageAnalysisTemplate, info.Alt, info.Processing, info.FocusAreas)
}
