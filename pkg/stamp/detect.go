package stamp

import (
	"fmt"
	"regexp"
	"strings"
)

// Layer name patterns as fpdf emits them in the OCProperties dictionary.
// Parentheses inside the name are backslash-escaped in PDF strings, which
// matters here because the emitted names look like "Stamp (Page 3)".
var ocgNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(((?:\\.|[^()\\])*)\)`),
	regexp.MustCompile(`/Name\s*\(((?:\\.|[^()\\])*)\)\s*/Type\s*/OCG`),
	regexp.MustCompile(`/OCG\s*<<[^>]*?/Name\s*\(((?:\\.|[^()\\])*)\)`),
}

// stampLayerIn scans raw PDF data for a layer previously emitted by this
// tool: an OCG named exactly layerName, or layerName with the per-page
// suffix this tool appends. A foreign layer that merely shares a prefix
// (e.g. "Stamped Proof" vs "Stamp") does not count. Returns the first
// matching name.
func stampLayerIn(pdfData []byte, layerName string) (string, bool) {
	pageSuffix := regexp.MustCompile(`^` + regexp.QuoteMeta(layerName) + ` \(Page \d+\)$`)
	for _, name := range pdfLayerNames(pdfData) {
		if name == layerName || pageSuffix.MatchString(name) {
			return name, true
		}
	}
	return "", false
}

// pdfLayerNames extracts OCG layer names from raw PDF data. Names stored as
// UTF-16BE strings (with BOM) are decoded; all others are treated as
// Latin-1.
func pdfLayerNames(pdfData []byte) []string {
	content := string(pdfData)

	var names []string
	seen := make(map[string]bool)
	for _, re := range ocgNamePatterns {
		for _, match := range re.FindAllStringSubmatch(content, -1) {
			name := unescapePDFString(match[1])
			if decoded, err := decodeUTF16BE([]byte(name)); err == nil {
				name = decoded
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func unescapePDFString(s string) string {
	s = strings.ReplaceAll(s, "\\(", "(")
	s = strings.ReplaceAll(s, "\\)", ")")
	s = strings.ReplaceAll(s, "\\\\", "\\")
	return s
}

// decodeUTF16BE decodes a BOM-prefixed UTF-16BE byte string. Input without
// a BOM is rejected, since plain Latin-1 names would otherwise be mangled.
func decodeUTF16BE(b []byte) (string, error) {
	if len(b) < 2 || b[0] != 0xFE || b[1] != 0xFF {
		return "", fmt.Errorf("no UTF-16BE BOM")
	}
	b = b[2:]
	var runes []rune
	for i := 0; i+1 < len(b); i += 2 {
		runes = append(runes, rune(uint16(b[i])<<8|uint16(b[i+1])))
	}
	return string(runes), nil
}
