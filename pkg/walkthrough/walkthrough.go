// Package walkthrough shows where POML processing would plug into an application.
// The processors are placeholders until a POML SDK is wired in.
package walkthrough

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

const PlaceholderResponse = "This is a placeholder response. Implement actual POML processing with the SDK."

const DefaultProcessor = "customer-support"

// Processor turns one example POML prompt into a model response.
type Processor struct {
	Name  string
	Title string
	File  string
}

var processors = []Processor{
	{Name: "customer-support", Title: "customer support", File: "examples/customer-support.poml"},
	{Name: "ecommerce-report", Title: "ecommerce report", File: "examples/ecommerce-report.poml"},
	{Name: "image-analysis", Title: "image analysis", File: "examples/image-analysis.poml"},
}

func Processors() []Processor {
	return append([]Processor(nil), processors...)
}

func Names() []string {
	return lo.Map(processors, func(p Processor, _ int) string { return p.Name })
}

func Lookup(name string) (Processor, error) {
	p, ok := lo.Find(processors, func(p Processor) bool { return p.Name == name })
	if !ok {
		return Processor{}, fmt.Errorf("unknown example %q, available: %s", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Run would parse p.File, load its data sources, render the template and call the LLM.
func (p Processor) Run(ctx context.Context) (string, error) {
	slog.InfoContext(ctx, fmt.Sprintf("Processing %s prompt...", p.Title), "file", p.File)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return PlaceholderResponse, nil
}
