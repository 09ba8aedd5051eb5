package extraction

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/expirywatch/labelscan/internal/models"
)

var (
	productRe = regexp.MustCompile(`"product"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	expiryRe  = regexp.MustCompile(`"expiryDate"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// ParseModelReply recovers {product, expiryDate} from a possibly noisy model
// reply. It tries strict JSON on the first-{ to last-} substring, then falls
// back to regex field extraction. Total failure yields empty fields.
func ParseModelReply(reply string) models.AnalyzeResult {
	text := strings.TrimSpace(reply)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx != -1 && endIdx > startIdx {
		candidate := text[startIdx : endIdx+1]
		var result models.AnalyzeResult
		if err := json.Unmarshal([]byte(candidate), &result); err == nil {
			result.Product = strings.TrimSpace(result.Product)
			result.ExpiryDate = strings.TrimSpace(result.ExpiryDate)
			return result
		}
	}

	// Fallback: pull the fields out with regexes, unescaping quoted chars
	var result models.AnalyzeResult
	if m := productRe.FindStringSubmatch(text); m != nil {
		result.Product = unescape(m[1])
	}
	if m := expiryRe.FindStringSubmatch(text); m != nil {
		result.ExpiryDate = unescape(m[1])
	}
	return result
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return strings.TrimSpace(s)
}
