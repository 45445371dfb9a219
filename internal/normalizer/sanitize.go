package normalizer

import (
	"regexp"
)

// Cleanup passes over editor output, applied in order. The attribute
// strips must run before the empty-class collapse, and the empty
// paragraph normalization runs last so exported documents keep their
// blank lines.
var (
	editorClassPattern   = regexp.MustCompile(`\s*class="[^"]*\bql-[^"]*"`)
	styleAttrPattern     = regexp.MustCompile(`\s*style="[^"]*"`)
	emptyClassPattern    = regexp.MustCompile(`\s*class=""`)
	interTagSpacePattern = regexp.MustCompile(`>\s+<`)
	emptyParaPattern     = regexp.MustCompile(`<p>(?:\s|&nbsp;|<br\s*/?>)*</p>`)
)

// SanitizeEditorHTML strips the rich-text widget's namespaced class
// tokens and inline styles, collapses leftover whitespace between tags
// and normalizes empty paragraphs to a single &nbsp; placeholder. The
// transform is idempotent.
func SanitizeEditorHTML(html string) string {
	out := editorClassPattern.ReplaceAllString(html, "")
	out = styleAttrPattern.ReplaceAllString(out, "")
	out = emptyClassPattern.ReplaceAllString(out, "")
	out = interTagSpacePattern.ReplaceAllString(out, "> <")
	out = emptyParaPattern.ReplaceAllString(out, "<p>&nbsp;</p>")
	return out
}
