package poml

import (
	"regexp"
	"strings"

	"github.com/dskvich/poml-examples/pkg/domain"
)

var (
	// imgTagRe matches an opening or self-closing img tag. The name must be followed by
	// whitespace or the tag end, so custom tags like <img-caption> are not matched.
	// Quoted values may contain '>'.
	imgTagRe = regexp.MustCompile(`(?i)<img((?:\s(?:[^>"']|"[^"]*"|'[^']*')*)?)/?>`)

	attrRe = regexp.MustCompile(`(?i)([a-z_:][-a-z0-9_:.]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// ExtractImageTag returns the attributes of the first img tag carrying a non-empty src.
// Attributes are read from that tag only.
func ExtractImageTag(content string) (domain.ImageTagInfo, error) {
	for _, m := range imgTagRe.FindAllStringSubmatch(content, -1) {
		attrs := parseAttributes(m[1])

		src := attrs["src"]
		if src == "" {
			continue
		}

		return domain.ImageTagInfo{
			Src:        src,
			Alt:        attrs["alt"],
			Processing: attrs["processing"],
			FocusAreas: attrs["focus_areas"],
		}, nil
	}

	return domain.ImageTagInfo{}, domain.ErrNoImageFound
}

// parseAttributes maps lower-cased attribute names to their values; the first non-empty occurrence wins.
func parseAttributes(span string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(span, -1) {
		name := strings.ToLower(m[1])
		if attrs[name] != "" {
			continue
		}

		value := m[2]
		if value == "" {
			value = m[3]
		}
		attrs[name] = value
	}
	return attrs
}
